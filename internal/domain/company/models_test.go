package company

import (
	"errors"
	"strings"
	"testing"
)

func TestCreateParams_Validate(t *testing.T) {
	valid := CreateParams{
		OwnerID:   1,
		CNPJ:      "11.222.333/0001-81",
		LegalName: "Padaria Boa Massa LTDA",
		TradeName: "Boa Massa",
		Phone:     "(11) 98765-4321",
		Email:     "contato@boamassa.com.br",
	}

	tests := []struct {
		name    string
		mutate  func(p *CreateParams)
		wantErr bool
		errIs   error
	}{
		{name: "valid", mutate: func(p *CreateParams) {}},
		{name: "missing owner", mutate: func(p *CreateParams) { p.OwnerID = 0 }, wantErr: true},
		{name: "invalid cnpj check digit", mutate: func(p *CreateParams) { p.CNPJ = "11.222.333/0001-80" }, wantErr: true, errIs: ErrInvalidCNPJ},
		{name: "repeated cnpj digits", mutate: func(p *CreateParams) { p.CNPJ = "00000000000000" }, wantErr: true, errIs: ErrInvalidCNPJ},
		{name: "missing legal name", mutate: func(p *CreateParams) { p.LegalName = "" }, wantErr: true},
		{name: "legal name too long", mutate: func(p *CreateParams) { p.LegalName = strings.Repeat("a", 256) }, wantErr: true},
		{name: "invalid phone", mutate: func(p *CreateParams) { p.Phone = "11887654321" }, wantErr: true, errIs: ErrInvalidPhone},
		{name: "phone optional", mutate: func(p *CreateParams) { p.Phone = "" }},
		{name: "invalid email", mutate: func(p *CreateParams) { p.Email = "not-an-email" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()

			if tt.wantErr {
				if err == nil {
					t.Fatal("Validate() expected error, got nil")
				}
				if tt.errIs != nil && !errors.Is(err, tt.errIs) {
					t.Errorf("Validate() error = %v, want %v", err, tt.errIs)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestUpdateParams_Validate(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name    string
		params  UpdateParams
		wantErr bool
	}{
		{"all nil", UpdateParams{}, false},
		{"valid phone update", UpdateParams{Phone: strPtr("11987654321")}, false},
		{"clear phone", UpdateParams{Phone: strPtr("")}, false},
		{"invalid phone", UpdateParams{Phone: strPtr("999")}, true},
		{"empty legal name", UpdateParams{LegalName: strPtr("")}, true},
		{"legal name too long", UpdateParams{LegalName: strPtr(strings.Repeat("a", 256))}, true},
		{"valid email", UpdateParams{Email: strPtr("novo@empresa.com")}, false},
		{"invalid email", UpdateParams{Email: strPtr("sem-arroba")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr && err == nil {
				t.Error("Validate() expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestCompany_FormattedDocuments(t *testing.T) {
	c := &Company{CNPJ: "11222333000181", Phone: "11987654321"}

	if got := c.FormattedCNPJ(); got != "11.222.333/0001-81" {
		t.Errorf("FormattedCNPJ() = %q, want %q", got, "11.222.333/0001-81")
	}
	if got := c.FormattedPhone(); got != "(11) 98765-4321" {
		t.Errorf("FormattedPhone() = %q, want %q", got, "(11) 98765-4321")
	}
}
