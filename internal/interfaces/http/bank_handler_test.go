package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	apphttp "github.com/jhoicas/backoffice-api/internal/interfaces/http"
)

// memBanks BankRepository en memoria.
type memBanks struct {
	mu    sync.Mutex
	banks []*entity.Bank
}

func (m *memBanks) Create(_ context.Context, b *entity.Bank) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.banks = append(m.banks, b)
	return nil
}

func (m *memBanks) GetByID(_ context.Context, id string) (*entity.Bank, error) {
	for _, b := range m.banks {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (m *memBanks) GetByNameKey(_ context.Context, key string) (*entity.Bank, error) {
	for _, b := range m.banks {
		if b.NameKey == key {
			return b, nil
		}
	}
	return nil, nil
}

func (m *memBanks) List(context.Context, repository.ListFilter) ([]*entity.Bank, int, error) {
	return m.banks, len(m.banks), nil
}

func (m *memBanks) Update(context.Context, *entity.Bank) error { return nil }

func (m *memBanks) SetActive(_ context.Context, id string, active bool) error {
	if b, _ := m.GetByID(context.Background(), id); b != nil {
		b.IsActive = active
	}
	return nil
}

func banksApp() *fiber.App {
	h := apphttp.NewBankHandler(usecase.NewBankUseCase(&memBanks{}, zerolog.Nop()), nil)
	return newAPI(func(api fiber.Router) {
		api.Post("/banks", h.Create)
		api.Get("/banks", h.List)
		api.Get("/banks/:id", h.GetByID)
	})
}

// Alta de banco con espacios y duplicado sin distinguir mayúsculas.
func TestBanks_CreateRecortaYRechazaDuplicado(t *testing.T) {
	app := banksApp()

	resp := call(t, app, http.MethodPost, "/api/banks", `{"name":"  HSBC  "}`, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var bank dto.BankResponse
	require.NoError(t, json.Unmarshal(readEnvelope(t, resp).Data, &bank))
	assert.Equal(t, "HSBC", bank.Name)
	assert.True(t, bank.IsActive)

	resp = call(t, app, http.MethodPost, "/api/banks", `{"name":"hsbc"}`, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env := readEnvelope(t, resp)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "HSBC")

	resp = call(t, app, http.MethodGet, "/api/banks", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	env = readEnvelope(t, resp)
	var list []dto.BankResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 1, env.Pagination.Total)
}

func TestBanks_CreateSinNombre_400(t *testing.T) {
	resp := call(t, banksApp(), http.MethodPost, "/api/banks", `{"name":""}`, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBanks_GetByID_NoExiste_404(t *testing.T) {
	resp := call(t, banksApp(), http.MethodGet, "/api/banks/44444444-4444-4444-4444-444444444444", "", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
