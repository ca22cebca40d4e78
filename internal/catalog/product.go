package catalog

// ImageSet holds the responsive variants of one image.
type ImageSet struct {
	Mobile  string `json:"mobile"`
	Tablet  string `json:"tablet"`
	Desktop string `json:"desktop"`
}

// BoxItem is one "in the box" line.
type BoxItem struct {
	Quantity int    `json:"quantity"`
	Item     string `json:"item"`
}

// Gallery carries the three product-detail images.
type Gallery struct {
	First  ImageSet `json:"first"`
	Second ImageSet `json:"second"`
	Third  ImageSet `json:"third"`
}

// Related points at another product shown in the "you may also like" row.
type Related struct {
	Slug  string   `json:"slug"`
	Name  string   `json:"name"`
	Image ImageSet `json:"image"`
}

// Product is a catalog entry. Field names and casing match the on-disk
// JSON document, which predates this service. IDs are assigned by the
// store and are immutable; slug uniqueness is the caller's problem.
type Product struct {
	ID            int       `json:"id"`
	Slug          string    `json:"slug"`
	Name          string    `json:"name"`
	Image         ImageSet  `json:"image"`
	Category      string    `json:"category"`
	CategoryImage ImageSet  `json:"categoryImage"`
	New           bool      `json:"new"`
	Price         float64   `json:"price"`
	Description   string    `json:"description"`
	Features      string    `json:"features"`
	Includes      []BoxItem `json:"includes"`
	Gallery       Gallery   `json:"gallery"`
	Others        []Related `json:"others"`
}
