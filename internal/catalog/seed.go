package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type seedEntry struct {
	Code  string
	Name  string
	Years int // 0 means no default validity
}

// defaultSeed is the standard Brazilian compliance vocabulary a new company
// starts with. Validity periods follow the usual renewal cycles; identity
// documents carry none.
var defaultSeed = []seedEntry{
	{Code: "NR05", Name: "NR-05 CIPA", Years: 1},
	{Code: "NR06", Name: "NR-06 Equipamento de Proteção Individual", Years: 2},
	{Code: "NR10", Name: "NR-10 Segurança em Instalações Elétricas", Years: 2},
	{Code: "NR11", Name: "NR-11 Transporte e Movimentação de Materiais", Years: 2},
	{Code: "NR12", Name: "NR-12 Segurança no Trabalho em Máquinas", Years: 2},
	{Code: "NR13", Name: "NR-13 Caldeiras e Vasos de Pressão", Years: 2},
	{Code: "NR17", Name: "NR-17 Ergonomia", Years: 2},
	{Code: "NR18", Name: "NR-18 Condições de Trabalho na Construção", Years: 1},
	{Code: "NR20", Name: "NR-20 Inflamáveis e Combustíveis", Years: 2},
	{Code: "NR23", Name: "NR-23 Proteção Contra Incêndios", Years: 1},
	{Code: "NR26", Name: "NR-26 Sinalização de Segurança", Years: 2},
	{Code: "NR31", Name: "NR-31 Agricultura e Pecuária", Years: 2},
	{Code: "NR33", Name: "NR-33 Espaços Confinados", Years: 1},
	{Code: "NR34", Name: "NR-34 Indústria Naval", Years: 1},
	{Code: "NR35", Name: "NR-35 Trabalho em Altura", Years: 2},
	{Code: "ASO", Name: "Atestado de Saúde Ocupacional", Years: 1},
	{Code: "CNH", Name: "Carteira Nacional de Habilitação"},
	{Code: "CTPS", Name: "Carteira de Trabalho"},
	{Code: "RG", Name: "Registro Geral"},
	{Code: "CPF", Name: "Cadastro de Pessoa Física"},
	{Code: "OUTRO", Name: "Outro Documento"},
}

// SeedCompany inserts the default vocabulary for a company, skipping codes
// that already exist. Returns the number of entries created.
func SeedCompany(ctx context.Context, repo Repo, companyID string) (int, error) {
	created := 0
	for _, seed := range defaultSeed {
		if _, err := repo.GetByCode(ctx, companyID, seed.Code); err == nil {
			continue
		}
		entry := DocumentType{
			ID:        uuid.NewString(),
			CompanyID: companyID,
			Code:      seed.Code,
			Name:      seed.Name,
			CreatedAt: time.Now().UTC(),
		}
		if seed.Years > 0 {
			years := seed.Years
			entry.DefaultValidityYears = &years
		}
		if err := repo.Create(ctx, entry); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
