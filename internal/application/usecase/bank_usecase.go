package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/pkg/textnorm"
)

// BankUseCase catálogo de bancos. Los nombres son únicos sin distinguir mayúsculas ni acentos.
type BankUseCase struct {
	repo repository.BankRepository
	log  zerolog.Logger
}

func NewBankUseCase(repo repository.BankRepository, log zerolog.Logger) *BankUseCase {
	return &BankUseCase{repo: repo, log: log}
}

// Create recorta el nombre y rechaza duplicados (domain.ErrDuplicate).
func (uc *BankUseCase) Create(ctx context.Context, in dto.CreateBankRequest) (*dto.BankResponse, error) {
	name := textnorm.TrimName(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre del banco es obligatorio", domain.ErrInvalidInput)
	}
	key := textnorm.FoldName(name)
	if err := uc.ensureUniqueName(ctx, key, ""); err != nil {
		return nil, err
	}
	now := time.Now()
	bank := &entity.Bank{
		ID:        uuid.New().String(),
		Name:      name,
		NameKey:   key,
		Code:      textnorm.TrimName(in.Code),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, bank); err != nil {
		return nil, err
	}
	uc.log.Info().Str("bank_id", bank.ID).Str("name", bank.Name).Msg("bank created")
	return toBankResponse(bank), nil
}

func (uc *BankUseCase) ensureUniqueName(ctx context.Context, key, selfID string) error {
	existing, err := uc.repo.GetByNameKey(ctx, key)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return fmt.Errorf("%w: ya existe un banco con el nombre %q", domain.ErrDuplicate, existing.Name)
	}
	return nil
}

// GetByID detalle de un banco.
func (uc *BankUseCase) GetByID(ctx context.Context, id string) (*dto.BankResponse, error) {
	bank, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBankResponse(bank), nil
}

func (uc *BankUseCase) get(ctx context.Context, id string) (*entity.Bank, error) {
	if !isUUID(id) {
		return nil, fmt.Errorf("%w: id de banco inválido", domain.ErrInvalidInput)
	}
	bank, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bank == nil {
		return nil, fmt.Errorf("%w: banco no encontrado", domain.ErrNotFound)
	}
	return bank, nil
}

// List bancos paginados; search hace coincidencia parcial.
func (uc *BankUseCase) List(ctx context.Context, in dto.CatalogListRequest) (*dto.ListResult[dto.BankResponse], error) {
	in.Normalize()
	list, total, err := uc.repo.List(ctx, listFilter(in))
	if err != nil {
		return nil, err
	}
	items := make([]dto.BankResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBankResponse(b))
	}
	return &dto.ListResult[dto.BankResponse]{Items: items, Pagination: dto.NewPagination(in.PageRequest, total)}, nil
}

// Update aplica los campos presentes. Un cambio de nombre vuelve a validar unicidad.
func (uc *BankUseCase) Update(ctx context.Context, id string, in dto.UpdateBankRequest) (*dto.BankResponse, error) {
	bank, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := textnorm.TrimName(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre del banco es obligatorio", domain.ErrInvalidInput)
		}
		key := textnorm.FoldName(name)
		if key != bank.NameKey {
			if err := uc.ensureUniqueName(ctx, key, bank.ID); err != nil {
				return nil, err
			}
		}
		bank.Name, bank.NameKey = name, key
	}
	if in.Code != nil {
		bank.Code = textnorm.TrimName(*in.Code)
	}
	bank.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, bank); err != nil {
		return nil, err
	}
	return toBankResponse(bank), nil
}

// Deactivate baja lógica.
func (uc *BankUseCase) Deactivate(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.SetActive(ctx, id, false)
}

// Activate reactiva un banco.
func (uc *BankUseCase) Activate(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.SetActive(ctx, id, true)
}

func toBankResponse(b *entity.Bank) *dto.BankResponse {
	return &dto.BankResponse{
		ID:        b.ID,
		Name:      b.Name,
		Code:      b.Code,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// BankAccountUseCase cuentas bancarias de empresa y claves de ruteo entre bancos.
type BankAccountUseCase struct {
	accounts  repository.BankAccountRepository
	numbers   repository.BankNumberRepository
	banks     repository.BankRepository
	companies repository.CompanyRepository
}

func NewBankAccountUseCase(accounts repository.BankAccountRepository, numbers repository.BankNumberRepository,
	banks repository.BankRepository, companies repository.CompanyRepository) *BankAccountUseCase {
	return &BankAccountUseCase{accounts: accounts, numbers: numbers, banks: banks, companies: companies}
}

// CreateAccount registra una cuenta de cargo para la empresa.
func (uc *BankAccountUseCase) CreateAccount(ctx context.Context, in dto.CreateBankAccountRequest) (*dto.BankAccountResponse, error) {
	if !isUUID(in.CompanyID) || !isUUID(in.BankID) {
		return nil, fmt.Errorf("%w: companyId y bankId deben ser UUID", domain.ErrInvalidInput)
	}
	number := textnorm.TrimName(in.AccountNumber)
	if number == "" {
		return nil, fmt.Errorf("%w: accountNumber es obligatorio", domain.ErrInvalidInput)
	}
	if in.Clabe != "" && !isDigits(in.Clabe, 18) {
		return nil, fmt.Errorf("%w: la CLABE debe tener 18 dígitos", domain.ErrInvalidInput)
	}
	company, err := uc.companies.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("%w: empresa no encontrada", domain.ErrNotFound)
	}
	bank, err := uc.banks.GetByID(ctx, in.BankID)
	if err != nil {
		return nil, err
	}
	if bank == nil {
		return nil, fmt.Errorf("%w: banco no encontrado", domain.ErrNotFound)
	}
	account := &entity.BankAccount{
		ID:            uuid.New().String(),
		CompanyID:     company.ID,
		BankID:        bank.ID,
		Bank:          bank,
		AccountNumber: number,
		Clabe:         in.Clabe,
		IsActive:      true,
		CreatedAt:     time.Now(),
	}
	if err := uc.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return toBankAccountResponse(account), nil
}

// ListAccounts cuentas de una empresa.
func (uc *BankAccountUseCase) ListAccounts(ctx context.Context, companyID string) ([]dto.BankAccountResponse, error) {
	if !isUUID(companyID) {
		return nil, fmt.Errorf("%w: companyId inválido", domain.ErrInvalidInput)
	}
	list, err := uc.accounts.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BankAccountResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toBankAccountResponse(a))
	}
	return out, nil
}

// CreateBankNumber registra la clave de 5 dígitos para (banco de cargo, banco de abono).
func (uc *BankAccountUseCase) CreateBankNumber(ctx context.Context, in dto.CreateBankNumberRequest) (*dto.BankNumberResponse, error) {
	if !isUUID(in.BankDebited) {
		return nil, fmt.Errorf("%w: bankDebited inválido", domain.ErrInvalidInput)
	}
	if !isDigits(in.BankNumber, 5) {
		return nil, fmt.Errorf("%w: bankNumber debe tener exactamente 5 dígitos", domain.ErrInvalidInput)
	}
	credited := textnorm.TrimName(in.BankCredited)
	if credited == "" {
		return nil, fmt.Errorf("%w: bankCredited es obligatorio", domain.ErrInvalidInput)
	}
	debited, err := uc.banks.GetByID(ctx, in.BankDebited)
	if err != nil {
		return nil, err
	}
	if debited == nil {
		return nil, fmt.Errorf("%w: banco de cargo no encontrado", domain.ErrNotFound)
	}
	existing, err := uc.numbers.Find(ctx, debited.ID, credited)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe una clave para %s -> %s", domain.ErrDuplicate, debited.Name, credited)
	}
	bn := &entity.BankNumber{
		ID:           uuid.New().String(),
		BankDebited:  debited.ID,
		BankCredited: credited,
		Number:       in.BankNumber,
		CreatedAt:    time.Now(),
	}
	if err := uc.numbers.Create(ctx, bn); err != nil {
		return nil, err
	}
	return toBankNumberResponse(bn), nil
}

// ListBankNumbers claves registradas para un banco de cargo.
func (uc *BankAccountUseCase) ListBankNumbers(ctx context.Context, bankDebited string) ([]dto.BankNumberResponse, error) {
	if bankDebited != "" && !isUUID(bankDebited) {
		return nil, fmt.Errorf("%w: bankDebited inválido", domain.ErrInvalidInput)
	}
	list, err := uc.numbers.List(ctx, bankDebited)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BankNumberResponse, 0, len(list))
	for _, bn := range list {
		out = append(out, *toBankNumberResponse(bn))
	}
	return out, nil
}

func toBankAccountResponse(a *entity.BankAccount) *dto.BankAccountResponse {
	out := &dto.BankAccountResponse{
		ID:            a.ID,
		CompanyID:     a.CompanyID,
		BankID:        a.BankID,
		AccountNumber: a.AccountNumber,
		Clabe:         a.Clabe,
		IsActive:      a.IsActive,
	}
	if a.Bank != nil {
		out.BankName = a.Bank.Name
	}
	return out
}

func toBankNumberResponse(bn *entity.BankNumber) *dto.BankNumberResponse {
	return &dto.BankNumberResponse{
		ID:           bn.ID,
		BankDebited:  bn.BankDebited,
		BankCredited: bn.BankCredited,
		BankNumber:   bn.Number,
	}
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
