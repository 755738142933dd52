package billing_test

import (
	"context"
	"errors"
	"time"

	"github.com/tu-usuario/freelanceflow/internal/application/billing"
	"github.com/tu-usuario/freelanceflow/internal/domain"
	"github.com/tu-usuario/freelanceflow/internal/domain/entity"
	"github.com/tu-usuario/freelanceflow/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los casos de uso de facturación.
// Replican el contrato de los adaptadores Postgres: lecturas excluyen soft
// delete, GetByID retorna (nil, nil) si no existe, Create retorna ErrDuplicate
// si el número de factura ya está tomado.
// ──────────────────────────────────────────────────────────────────────────────

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func newFakeClientRepo(clients ...*entity.Client) *fakeClientRepo {
	r := &fakeClientRepo{clients: map[string]*entity.Client{}}
	for _, c := range clients {
		r.clients[c.ID] = c
	}
	return r
}

func (r *fakeClientRepo) Create(c *entity.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := r.clients[id]
	if !ok || c.IsDeleted {
		return nil, nil
	}
	return c, nil
}

func (r *fakeClientRepo) GetByEmail(email string) (*entity.Client, error) {
	for _, c := range r.clients {
		if !c.IsDeleted && c.Email == email {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) List(limit, offset int) ([]*entity.Client, error) { return nil, nil }
func (r *fakeClientRepo) ListActive() ([]*entity.Client, error)            { return nil, nil }
func (r *fakeClientRepo) SearchByName(name string) ([]*entity.Client, error) {
	return nil, nil
}
func (r *fakeClientRepo) Count() (int, error) { return len(r.clients), nil }

func (r *fakeClientRepo) Update(c *entity.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) SoftDelete(id string) error {
	if c, ok := r.clients[id]; ok {
		c.IsDeleted = true
	}
	return nil
}

type fakeProjectRepo struct {
	projects map[string]*entity.Project
}

func newFakeProjectRepo(projects ...*entity.Project) *fakeProjectRepo {
	r := &fakeProjectRepo{projects: map[string]*entity.Project{}}
	for _, p := range projects {
		r.projects[p.ID] = p
	}
	return r
}

func (r *fakeProjectRepo) Create(p *entity.Project) error {
	r.projects[p.ID] = p
	return nil
}

func (r *fakeProjectRepo) GetByID(id string) (*entity.Project, error) {
	p, ok := r.projects[id]
	if !ok || p.IsDeleted {
		return nil, nil
	}
	return p, nil
}

func (r *fakeProjectRepo) GetByIDWithClient(id string) (*repository.ProjectWithClient, error) {
	p, err := r.GetByID(id)
	if err != nil || p == nil {
		return nil, err
	}
	return &repository.ProjectWithClient{Project: *p, ClientName: "Cliente Test"}, nil
}

func (r *fakeProjectRepo) List(limit, offset int) ([]*repository.ProjectWithClient, error) {
	return nil, nil
}
func (r *fakeProjectRepo) ListByClient(clientID string) ([]*repository.ProjectWithClient, error) {
	return nil, nil
}
func (r *fakeProjectRepo) ListActive() ([]*repository.ProjectWithClient, error) { return nil, nil }

func (r *fakeProjectRepo) Update(p *entity.Project) error {
	r.projects[p.ID] = p
	return nil
}

func (r *fakeProjectRepo) SoftDelete(id string) error {
	if p, ok := r.projects[id]; ok {
		p.IsDeleted = true
	}
	return nil
}

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	items    map[string][]*entity.InvoiceItem
	numbers  map[string]bool

	// forceDuplicates hace fallar los próximos N Create con ErrDuplicate,
	// simulando otro request ganando el mismo consecutivo.
	forceDuplicates int
	createCalls     int
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: map[string]*entity.Invoice{},
		items:    map[string][]*entity.InvoiceItem{},
		numbers:  map[string]bool{},
	}
}

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	r.createCalls++
	if r.forceDuplicates > 0 {
		r.forceDuplicates--
		return domain.ErrDuplicate
	}
	if r.numbers[inv.InvoiceNumber] {
		return domain.ErrDuplicate
	}
	cp := *inv
	r.invoices[inv.ID] = &cp
	r.numbers[inv.InvoiceNumber] = true
	return nil
}

func (r *fakeInvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	cp := *item
	r.items[item.InvoiceID] = append(r.items[item.InvoiceID], &cp)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok || inv.IsDeleted {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) GetByIDWithNames(id string) (*repository.InvoiceWithNames, error) {
	inv, err := r.GetByID(id)
	if err != nil || inv == nil {
		return nil, err
	}
	return &repository.InvoiceWithNames{Invoice: *inv, ClientName: "Cliente Test"}, nil
}

func (r *fakeInvoiceRepo) GetItems(invoiceID string) ([]*entity.InvoiceItem, error) {
	return r.items[invoiceID], nil
}

func (r *fakeInvoiceRepo) List(limit, offset int) ([]*repository.InvoiceWithNames, error) {
	out := []*repository.InvoiceWithNames{}
	for _, inv := range r.invoices {
		if !inv.IsDeleted {
			out = append(out, &repository.InvoiceWithNames{Invoice: *inv})
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) ListByClient(clientID string) ([]*repository.InvoiceWithNames, error) {
	return nil, nil
}
func (r *fakeInvoiceRepo) ListByProject(projectID string) ([]*repository.InvoiceWithNames, error) {
	return nil, nil
}
func (r *fakeInvoiceRepo) ListOverdue(today time.Time) ([]*repository.InvoiceWithNames, error) {
	out := []*repository.InvoiceWithNames{}
	for _, inv := range r.invoices {
		if !inv.IsDeleted && inv.IsOverdueAt(today) {
			out = append(out, &repository.InvoiceWithNames{Invoice: *inv})
		}
	}
	return out, nil
}
func (r *fakeInvoiceRepo) ListByPaymentStatus(paymentStatus string) ([]*repository.InvoiceWithNames, error) {
	out := []*repository.InvoiceWithNames{}
	for _, inv := range r.invoices {
		if !inv.IsDeleted && inv.PaymentStatus == paymentStatus {
			out = append(out, &repository.InvoiceWithNames{Invoice: *inv})
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) Update(inv *entity.Invoice) error {
	if _, ok := r.invoices[inv.ID]; !ok {
		return errors.New("factura no existe")
	}
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) DeleteItems(invoiceID string) error {
	delete(r.items, invoiceID)
	return nil
}

func (r *fakeInvoiceRepo) SoftDelete(id string) error {
	if inv, ok := r.invoices[id]; ok {
		inv.IsDeleted = true
	}
	return nil
}

func (r *fakeInvoiceRepo) CountCreatedInMonth(year int, month time.Month) (int, error) {
	n := 0
	for _, inv := range r.invoices {
		if !inv.IsDeleted && inv.CreatedAt.Year() == year && inv.CreatedAt.Month() == month {
			n++
		}
	}
	return n, nil
}

// fakeTxRunner ejecuta fn directamente contra el repo en memoria, sin
// transacción real.
type fakeTxRunner struct {
	repo *fakeInvoiceRepo
}

func (r *fakeTxRunner) RunInvoice(_ context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error {
	return fn(r.repo)
}

var _ billing.InvoiceTxRunner = (*fakeTxRunner)(nil)
var _ repository.InvoiceRepository = (*fakeInvoiceRepo)(nil)
var _ repository.ClientRepository = (*fakeClientRepo)(nil)
var _ repository.ProjectRepository = (*fakeProjectRepo)(nil)
