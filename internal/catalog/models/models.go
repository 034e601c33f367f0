package models

// ============================================================
// Catalogue Models
// ============================================================

type Product struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Customizable bool   `json:"customizable"`
	CreatedAt    string `json:"created_at"`
}

type Color struct {
	ID            string `json:"id"`
	ProductID     string `json:"productId"`
	Name          string `json:"name"`
	Hex           string `json:"hex"`
	FrontImageURL string `json:"frontImageUrl"`
	BackImageURL  string `json:"backImageUrl"`
	SideImageURL  string `json:"sideImageUrl"`
}

type Fabric struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CustomizableProduct — продукт с цветами и тканями в том виде,
// в каком его ждёт конструктор.
type CustomizableProduct struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Colors  []Color  `json:"colors"`
	Fabrics []Fabric `json:"availableFabrics"`
}

// ============================================================
// Enquiries
// ============================================================

type Enquiry struct {
	ID                 string `json:"id"`
	FabricID           string `json:"fabricId"`
	PrintType          string `json:"printType"`
	Quantity           int    `json:"quantity"`
	SizeRange          string `json:"sizeRange"`
	PhoneNumber        string `json:"phoneNumber"`
	Email              string `json:"email,omitempty"`
	CompanyName        string `json:"companyName,omitempty"`
	ContactPerson      string `json:"contactPerson,omitempty"`
	Notes              string `json:"notes,omitempty"`
	DesignImageURL     string `json:"designImageUrl"`
	BackDesignImageURL string `json:"backDesignImageUrl,omitempty"`
	SideDesignImageURL string `json:"sideDesignImageUrl,omitempty"`
	OriginalLogoURL    string `json:"originalLogoUrl,omitempty"`
	CreatedAt          string `json:"created_at"`
}

// ============================================================
// Reviews & Settings
// ============================================================

type Review struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	Published bool   `json:"published"`
	CreatedAt string `json:"created_at"`
}

type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
