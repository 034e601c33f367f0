package models

// ============================================================
// Catalogue reference data
// ============================================================

type Color struct {
	ID            string `json:"id"`
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

type Product struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Colors  []Color  `json:"colors"`
	Fabrics []Fabric `json:"availableFabrics"`
}

// ============================================================
// Enquiry intake
// ============================================================

const (
	PrintEmbroidery = "embroidery"
	PrintPrinting   = "printing"
)

// SizeRanges — фиксированный набор размерных сеток формы заказа.
var SizeRanges = []string{
	"S-XL",
	"XS-XXL",
	"XS-3XL",
	"XS-5XL",
	"One Size",
	"Custom Range",
}

func ValidSizeRange(s string) bool {
	for _, r := range SizeRanges {
		if r == s {
			return true
		}
	}
	return false
}

// EnquiryPayload — тело запроса в сервис приёма заявок. Ссылки на
// задний/боковой вид опускаются, если соответствующего композита нет.
type EnquiryPayload struct {
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
	OriginalLogoURL    string `json:"originalLogoUrl,omitempty"` // JSON-массив ссылок
}
