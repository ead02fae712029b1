package services

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"alkicorp-banksim/internal/adapters/persistence/models"
	"alkicorp-banksim/internal/adapters/persistence/repositories"
	"alkicorp-banksim/internal/config"
	"alkicorp-banksim/internal/core/domain"
	"alkicorp-banksim/internal/pkg/gameclock"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository fakes for service-level tests. Reads hand out
// copies and writes store copies, so a failed operation cannot leak a
// half-mutated row back into the store.

type fakeTxRunner struct{}

func (f *fakeTxRunner) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	return fc(nil)
}

type fakeBankStateRepo struct {
	nextID uint
	states map[int]*models.BankState
}

func newFakeBankStateRepo() *fakeBankStateRepo {
	return &fakeBankStateRepo{states: make(map[int]*models.BankState)}
}

func (r *fakeBankStateRepo) WithTx(tx *gorm.DB) repositories.BankStateRepository { return r }

func (r *fakeBankStateRepo) GetBySlot(ctx context.Context, slotID int) (*models.BankState, error) {
	state, ok := r.states[slotID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *state
	return &copied, nil
}

func (r *fakeBankStateRepo) Save(ctx context.Context, state *models.BankState) error {
	if state.ID == 0 {
		r.nextID++
		state.ID = r.nextID
	}
	copied := *state
	r.states[state.SlotID] = &copied
	return nil
}

type fakeClientRepo struct {
	nextID  uint
	clients map[uint]*models.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[uint]*models.Client)}
}

func (r *fakeClientRepo) WithTx(tx *gorm.DB) repositories.ClientRepository { return r }

func (r *fakeClientRepo) Create(ctx context.Context, client *models.Client) error {
	r.nextID++
	client.ID = r.nextID
	copied := *client
	r.clients[client.ID] = &copied
	return nil
}

func (r *fakeClientRepo) GetBySlotAndID(ctx context.Context, slotID int, id uint) (*models.Client, error) {
	client, ok := r.clients[id]
	if !ok || client.SlotID != slotID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *client
	return &copied, nil
}

func (r *fakeClientRepo) ListBySlot(ctx context.Context, slotID int) ([]*models.Client, error) {
	var clients []*models.Client
	for _, c := range r.clients {
		if c.SlotID == slotID {
			copied := *c
			clients = append(clients, &copied)
		}
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].ID < clients[j].ID })
	return clients, nil
}

func (r *fakeClientRepo) CountBySlot(ctx context.Context, slotID int) (int64, error) {
	clients, _ := r.ListBySlot(ctx, slotID)
	return int64(len(clients)), nil
}

func (r *fakeClientRepo) ListEmployedBySlot(ctx context.Context, slotID int) ([]*models.Client, error) {
	clients, _ := r.ListBySlot(ctx, slotID)
	var employed []*models.Client
	for _, c := range clients {
		if c.EmploymentStatus == domain.EmploymentActive {
			employed = append(employed, c)
		}
	}
	return employed, nil
}

func (r *fakeClientRepo) Update(ctx context.Context, client *models.Client) error {
	copied := *client
	r.clients[client.ID] = &copied
	return nil
}

func (r *fakeClientRepo) ResetDailyWithdrawn(ctx context.Context, slotID int) error {
	for _, c := range r.clients {
		if c.SlotID == slotID {
			c.DailyWithdrawn = decimal.Zero
		}
	}
	return nil
}

func (r *fakeClientRepo) DeleteBySlot(ctx context.Context, slotID int) error {
	for id, c := range r.clients {
		if c.SlotID == slotID {
			delete(r.clients, id)
		}
	}
	return nil
}

type fakeTransactionRepo struct {
	nextID  uint
	entries []*models.Transaction
}

func (r *fakeTransactionRepo) WithTx(tx *gorm.DB) repositories.TransactionRepository { return r }

func (r *fakeTransactionRepo) Append(ctx context.Context, entry *models.Transaction) error {
	r.nextID++
	entry.ID = r.nextID
	copied := *entry
	r.entries = append(r.entries, &copied)
	return nil
}

func (r *fakeTransactionRepo) ListByClient(ctx context.Context, clientID uint, offset, limit int) ([]*models.Transaction, int64, error) {
	var matched []*models.Transaction
	for _, e := range r.entries {
		if e.ClientID == clientID {
			copied := *e
			matched = append(matched, &copied)
		}
	}
	total := int64(len(matched))
	if offset > len(matched) {
		offset = len(matched)
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (r *fakeTransactionRepo) ListByClients(ctx context.Context, clientIDs []uint) ([]*models.Transaction, error) {
	ids := make(map[uint]bool, len(clientIDs))
	for _, id := range clientIDs {
		ids[id] = true
	}
	var matched []*models.Transaction
	for _, e := range r.entries {
		if ids[e.ClientID] {
			copied := *e
			matched = append(matched, &copied)
		}
	}
	return matched, nil
}

func (r *fakeTransactionRepo) SumWithdrawnOnDay(ctx context.Context, clientID uint, gameDay int) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, e := range r.entries {
		if e.ClientID == clientID && e.Type == domain.TxWithdrawal && e.GameDay == gameDay {
			sum = sum.Add(e.Amount)
		}
	}
	return sum, nil
}

func (r *fakeTransactionRepo) DeleteByClients(ctx context.Context, clientIDs []uint) error {
	ids := make(map[uint]bool, len(clientIDs))
	for _, id := range clientIDs {
		ids[id] = true
	}
	var kept []*models.Transaction
	for _, e := range r.entries {
		if !ids[e.ClientID] {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	return nil
}

type fakeInvestmentEventRepo struct {
	nextID uint
	events []*models.InvestmentEvent
}

func (r *fakeInvestmentEventRepo) WithTx(tx *gorm.DB) repositories.InvestmentEventRepository {
	return r
}

func (r *fakeInvestmentEventRepo) Append(ctx context.Context, event *models.InvestmentEvent) error {
	r.nextID++
	event.ID = r.nextID
	copied := *event
	r.events = append(r.events, &copied)
	return nil
}

func (r *fakeInvestmentEventRepo) ListBySlot(ctx context.Context, slotID int, limit int) ([]*models.InvestmentEvent, error) {
	var matched []*models.InvestmentEvent
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].SlotID != slotID {
			continue
		}
		copied := *r.events[i]
		matched = append(matched, &copied)
		if limit > 0 && len(matched) == limit {
			break
		}
	}
	return matched, nil
}

func (r *fakeInvestmentEventRepo) DeleteBySlot(ctx context.Context, slotID int) error {
	var kept []*models.InvestmentEvent
	for _, e := range r.events {
		if e.SlotID != slotID {
			kept = append(kept, e)
		}
	}
	r.events = kept
	return nil
}

type fakeProductRepo struct {
	nextID   uint
	products map[uint]*models.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uint]*models.Product)}
}

func (r *fakeProductRepo) WithTx(tx *gorm.DB) repositories.ProductRepository { return r }

func (r *fakeProductRepo) Create(ctx context.Context, product *models.Product) error {
	r.nextID++
	product.ID = r.nextID
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *fakeProductRepo) GetBySlotAndID(ctx context.Context, slotID int, id uint) (*models.Product, error) {
	product, ok := r.products[id]
	if !ok || product.SlotID != slotID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *product
	return &copied, nil
}

func (r *fakeProductRepo) ListBySlot(ctx context.Context, slotID int) ([]*models.Product, error) {
	var products []*models.Product
	for _, p := range r.products {
		if p.SlotID == slotID {
			copied := *p
			products = append(products, &copied)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (r *fakeProductRepo) ListAvailableBySlot(ctx context.Context, slotID int) ([]*models.Product, error) {
	products, _ := r.ListBySlot(ctx, slotID)
	var available []*models.Product
	for _, p := range products {
		if p.Status == domain.ProductAvailable {
			available = append(available, p)
		}
	}
	return available, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *models.Product) error {
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *fakeProductRepo) DeleteBySlot(ctx context.Context, slotID int) error {
	for id, p := range r.products {
		if p.SlotID == slotID {
			delete(r.products, id)
		}
	}
	return nil
}

type fakeCatalogRepo struct {
	jobs    []*models.Job
	rentals []*models.Rental
}

func (r *fakeCatalogRepo) ListJobs(ctx context.Context) ([]*models.Job, error) {
	return r.jobs, nil
}

func (r *fakeCatalogRepo) GetJob(ctx context.Context, id uint) (*models.Job, error) {
	for _, j := range r.jobs {
		if j.ID == id {
			copied := *j
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCatalogRepo) ListRentals(ctx context.Context) ([]*models.Rental, error) {
	return r.rentals, nil
}

func (r *fakeCatalogRepo) GetRental(ctx context.Context, id uint) (*models.Rental, error) {
	for _, rental := range r.rentals {
		if rental.ID == id {
			copied := *rental
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeLivingRepo struct {
	nextID uint
	rows   map[uint]*models.ClientLiving
}

func newFakeLivingRepo() *fakeLivingRepo {
	return &fakeLivingRepo{rows: make(map[uint]*models.ClientLiving)}
}

func (r *fakeLivingRepo) WithTx(tx *gorm.DB) repositories.LivingRepository { return r }

func (r *fakeLivingRepo) GetByClient(ctx context.Context, slotID int, clientID uint) (*models.ClientLiving, error) {
	living, ok := r.rows[clientID]
	if !ok || living.SlotID != slotID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *living
	return &copied, nil
}

func (r *fakeLivingRepo) Save(ctx context.Context, living *models.ClientLiving) error {
	if living.ID == 0 {
		r.nextID++
		living.ID = r.nextID
	}
	copied := *living
	r.rows[living.ClientID] = &copied
	return nil
}

func (r *fakeLivingRepo) DeleteByClient(ctx context.Context, slotID int, clientID uint) error {
	if living, ok := r.rows[clientID]; ok && living.SlotID == slotID {
		delete(r.rows, clientID)
	}
	return nil
}

func (r *fakeLivingRepo) DeleteBySlot(ctx context.Context, slotID int) error {
	for id, living := range r.rows {
		if living.SlotID == slotID {
			delete(r.rows, id)
		}
	}
	return nil
}

var (
	_ TxRunner                               = (*fakeTxRunner)(nil)
	_ repositories.BankStateRepository       = (*fakeBankStateRepo)(nil)
	_ repositories.ClientRepository          = (*fakeClientRepo)(nil)
	_ repositories.TransactionRepository     = (*fakeTransactionRepo)(nil)
	_ repositories.InvestmentEventRepository = (*fakeInvestmentEventRepo)(nil)
	_ repositories.ProductRepository         = (*fakeProductRepo)(nil)
	_ repositories.CatalogRepository         = (*fakeCatalogRepo)(nil)
	_ repositories.LivingRepository          = (*fakeLivingRepo)(nil)
)

// simFixture wires a SimulationService and its collaborators over the
// in-memory fakes.
type simFixture struct {
	cfg         config.SimulationConfig
	sim         *SimulationService
	bankRepo    *fakeBankStateRepo
	clientRepo  *fakeClientRepo
	txRepo      *fakeTransactionRepo
	eventRepo   *fakeInvestmentEventRepo
	productRepo *fakeProductRepo
	catalogRepo *fakeCatalogRepo
	livingRepo  *fakeLivingRepo
}

func newSimFixture() *simFixture {
	cfg := config.SimulationConfig{
		SlotCount:            3,
		DaysPerYear:          12,
		RealPerGameDay:       time.Hour,
		TickInterval:         time.Minute,
		DailyWithdrawalLimit: decimal.NewFromInt(1000),
		StartingCash:         decimal.NewFromInt(100000),
		Sp500InitialPrice:    decimal.NewFromInt(100),
		AnnualGrowthRate:     decimal.NewFromFloat(0.10),
		AnnualDividendRate:   decimal.NewFromFloat(0.02),
		MortgageAnnualRate:   decimal.NewFromFloat(0.055),
		BankruptcyGraceDays:  2,
	}

	f := &simFixture{
		cfg:         cfg,
		bankRepo:    newFakeBankStateRepo(),
		clientRepo:  newFakeClientRepo(),
		txRepo:      &fakeTransactionRepo{},
		eventRepo:   &fakeInvestmentEventRepo{},
		productRepo: newFakeProductRepo(),
		catalogRepo: &fakeCatalogRepo{},
		livingRepo:  newFakeLivingRepo(),
	}

	bankruptcy := NewBankruptcyService(cfg.BankruptcyGraceDays)
	payroll := NewPayrollService(f.clientRepo, f.txRepo, bankruptcy)
	rent := NewRentService(f.clientRepo, f.txRepo, bankruptcy)
	clock := gameclock.New(cfg.DaysPerYear, cfg.RealPerGameDay)
	f.sim = NewSimulationService(&fakeTxRunner{}, cfg, clock, f.bankRepo, f.clientRepo, f.eventRepo, payroll, rent, bankruptcy)
	return f
}

// seedSlot inserts a day-zero bank state for the slot
func (f *simFixture) seedSlot(slotID int) {
	_ = f.bankRepo.Save(context.Background(), &models.BankState{
		SlotID:          slotID,
		LiquidCash:      f.cfg.StartingCash,
		InvestedSp500:   decimal.Zero,
		Sp500Price:      f.cfg.Sp500InitialPrice,
		MortgageRate:    f.cfg.MortgageAnnualRate,
		GameDay:         0,
		NextDividendDay: f.cfg.DaysPerYear,
		NextGrowthDay:   f.cfg.DaysPerYear,
		LastUpdate:      time.Now(),
	})
}

// rewind pushes the slot's last update into the past so the next
// advance crosses the given number of whole game days.
func (f *simFixture) rewind(slotID int, days int) {
	state := f.bankRepo.states[slotID]
	state.LastUpdate = state.LastUpdate.Add(-time.Duration(days) * f.cfg.RealPerGameDay)
}

func (f *simFixture) addClient(client *models.Client) *models.Client {
	_ = f.clientRepo.Create(context.Background(), client)
	return client
}
