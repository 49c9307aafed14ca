package internal

// ProductType is the coarse category a product name classifies into.
type ProductType string

const (
	TypeValve           ProductType = "valve"
	TypeSprinkler       ProductType = "sprinkler"
	TypeThreadedFitting ProductType = "threaded-fitting"
	TypeCoupling        ProductType = "coupling"
	TypeGroovedFitting  ProductType = "grooved-fitting"
	TypeOther           ProductType = "other"
)

// ProductRecord is one catalog entry. ID is 0 until the record has been
// persisted; records are immutable after insert.
type ProductRecord struct {
	ID               int64
	ProductName      string
	ProductURL       string
	ShortDescription string
	Manufacturer     string
	SearchText       string
}

// MaterialItem is one line of a built material list: a chosen product plus
// the quantity/size the user asked for.
type MaterialItem struct {
	ID          string
	Qty         int
	Part        string
	Size        string
	Description string
	Type        ProductType
	Options     []string
	Sizes       []string

	Matched       bool
	OriginalInput string
}

// ScrapedProduct is one row produced by the product-page scraper before it
// is written out as a source CSV.
type ScrapedProduct struct {
	ProductName      string
	ProductURL       string
	ShortDescription string
}
