package domain

// Customer is a party that rents or buys scaffolding.
type Customer struct {
	CustomerID  string `json:"customerID"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	TaxID       string `json:"taxID"`
	Notes       string `json:"notes"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}

// Supplier is a party the company buys equipment from.
type Supplier struct {
	SupplierID    string `json:"supplierID"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	TaxID         string `json:"taxID"`
	Notes         string `json:"notes"`
	IsActive      bool   `json:"isActive"`
	AuditFields
}
