package entity

// CompanyProfile holds the business identification printed on receipts.
// Stored in data/company.json.
type CompanyProfile struct {
	Name    string `json:"name"`
	CNPJ    string `json:"cnpj,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// DefaultCompanyProfile returns the profile used when company.json is absent.
func DefaultCompanyProfile() *CompanyProfile {
	return &CompanyProfile{
		Name:    "Cantina Colégio Ativa",
		Address: "Endereço da Cantina",
	}
}
