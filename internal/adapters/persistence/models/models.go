package models

import (
	"time"

	"alkicorp-banksim/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ============================================================
// Auth Tables
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	IsAdmin   bool           `gorm:"default:false" json:"is_admin"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Simulation Tables
// ============================================================

// BankState is the per-slot simulation state: the slot clock plus the
// bank's pooled investment position. One row per slot.
type BankState struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	SlotID          int             `gorm:"uniqueIndex;not null" json:"slot_id"`
	LiquidCash      decimal.Decimal `gorm:"type:decimal(19,2);not null" json:"liquid_cash"`
	InvestedSp500   decimal.Decimal `gorm:"type:decimal(19,2);not null" json:"invested_sp500"`
	Sp500Price      decimal.Decimal `gorm:"type:decimal(19,2);not null" json:"sp500_price"`
	MortgageRate    decimal.Decimal `gorm:"type:decimal(7,4);not null" json:"mortgage_rate"`
	GameDay         float64         `gorm:"not null" json:"game_day"`
	NextDividendDay int             `gorm:"not null" json:"next_dividend_day"`
	NextGrowthDay   int             `gorm:"not null" json:"next_growth_day"`
	LastUpdate      time.Time       `gorm:"not null" json:"last_update"`
}

func (BankState) TableName() string {
	return "bank_states"
}

// TotalAssets is liquid cash plus invested holdings
func (b *BankState) TotalAssets() decimal.Decimal {
	return b.LiquidCash.Add(b.InvestedSp500)
}

// Client represents a bank client within one slot. Clients are never
// physically deleted.
type Client struct {
	ID               uint                    `gorm:"primaryKey" json:"id"`
	SlotID           int                     `gorm:"index;not null" json:"slot_id"`
	Name             string                  `gorm:"size:100;not null" json:"name"`
	CheckingBalance  decimal.Decimal         `gorm:"type:decimal(19,2);not null" json:"checking_balance"`
	SavingsBalance   decimal.Decimal         `gorm:"type:decimal(19,2);not null" json:"savings_balance"`
	DailyWithdrawn   decimal.Decimal         `gorm:"type:decimal(19,2);not null" json:"daily_withdrawn"`
	CardNumber       string                  `gorm:"size:25" json:"card_number"`
	CardExpiry       string                  `gorm:"size:5" json:"card_expiry"`
	CardCVV          string                  `gorm:"size:4" json:"card_cvv"`
	EmploymentStatus domain.EmploymentStatus `gorm:"size:20;not null;default:'UNEMPLOYED'" json:"employment_status"`
	JobID            *uint                   `json:"job_id"`
	MonthlyIncome    decimal.Decimal         `gorm:"type:decimal(19,2);not null" json:"monthly_income"`
	MonthlyMandatory decimal.Decimal         `gorm:"type:decimal(19,2);not null" json:"monthly_mandatory"`
	Bankrupt         bool                    `gorm:"default:false" json:"bankrupt"`
	NegativeSinceDay *float64                `json:"negative_since_day"`
	LastActivityDay  float64                 `gorm:"not null" json:"last_activity_day"`
	CreatedAt        time.Time               `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time               `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Job *Job `gorm:"foreignKey:JobID" json:"job,omitempty"`
}

func (Client) TableName() string {
	return "clients"
}

// MonthlyDiscretionary is the spend target left after mandatory
// obligations; never negative.
func (c *Client) MonthlyDiscretionary() decimal.Decimal {
	d := c.MonthlyIncome.Sub(c.MonthlyMandatory)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ClientResponse DTO
type ClientResponse struct {
	ID                   uint                    `json:"id"`
	Name                 string                  `json:"name"`
	CheckingBalance      decimal.Decimal         `json:"checking_balance"`
	SavingsBalance       decimal.Decimal         `json:"savings_balance"`
	DailyWithdrawn       decimal.Decimal         `json:"daily_withdrawn"`
	CardNumber           string                  `json:"card_number"`
	CardExpiry           string                  `json:"card_expiry"`
	CardCVV              string                  `json:"card_cvv"`
	EmploymentStatus     domain.EmploymentStatus `json:"employment_status"`
	MonthlyIncome        decimal.Decimal         `json:"monthly_income"`
	MonthlyMandatory     decimal.Decimal         `json:"monthly_mandatory"`
	MonthlyDiscretionary decimal.Decimal         `json:"monthly_discretionary"`
	Bankrupt             bool                    `json:"bankrupt"`
	LastActivityDay      float64                 `json:"last_activity_day"`
	CreatedAt            time.Time               `json:"created_at"`
}

func (c *Client) ToResponse() *ClientResponse {
	return &ClientResponse{
		ID:                   c.ID,
		Name:                 c.Name,
		CheckingBalance:      c.CheckingBalance,
		SavingsBalance:       c.SavingsBalance,
		DailyWithdrawn:       c.DailyWithdrawn,
		CardNumber:           c.CardNumber,
		CardExpiry:           c.CardExpiry,
		CardCVV:              c.CardCVV,
		EmploymentStatus:     c.EmploymentStatus,
		MonthlyIncome:        c.MonthlyIncome,
		MonthlyMandatory:     c.MonthlyMandatory,
		MonthlyDiscretionary: c.MonthlyDiscretionary(),
		Bankrupt:             c.Bankrupt,
		LastActivityDay:      c.LastActivityDay,
		CreatedAt:            c.CreatedAt,
	}
}

// Transaction is one immutable ledger entry. The log is append-only
// and is the source of truth for balance reconstruction.
type Transaction struct {
	ID        uint                   `gorm:"primaryKey" json:"id"`
	ClientID  uint                   `gorm:"not null;index" json:"client_id"`
	Type      domain.TransactionType `gorm:"size:40;not null" json:"type"`
	Amount    decimal.Decimal        `gorm:"type:decimal(19,2);not null" json:"amount"`
	GameDay   int                    `gorm:"not null;index" json:"game_day"`
	CreatedAt time.Time              `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Client *Client `gorm:"foreignKey:ClientID" json:"-"`
}

func (Transaction) TableName() string {
	return "client_transactions"
}

// SignedAmount is the entry's contribution to checking+savings
func (t *Transaction) SignedAmount() decimal.Decimal {
	switch t.Type.Sign() {
	case 1:
		return t.Amount
	case -1:
		return t.Amount.Neg()
	}
	return decimal.Zero
}

// InvestmentEvent records pooled-investment activity per slot
type InvestmentEvent struct {
	ID        uint                       `gorm:"primaryKey" json:"id"`
	SlotID    int                        `gorm:"index;not null" json:"slot_id"`
	Type      domain.InvestmentEventType `gorm:"size:20;not null" json:"type"`
	Asset     string                     `gorm:"size:40;not null" json:"asset"`
	Amount    decimal.Decimal            `gorm:"type:decimal(19,2);not null" json:"amount"`
	GameDay   int                        `gorm:"not null" json:"game_day"`
	CreatedAt time.Time                  `gorm:"autoCreateTime" json:"created_at"`
}

func (InvestmentEvent) TableName() string {
	return "investment_events"
}

// ============================================================
// Catalog Tables
// ============================================================

// Product is a property listing within one slot
type Product struct {
	ID            uint                 `gorm:"primaryKey" json:"id"`
	SlotID        int                  `gorm:"index;not null" json:"slot_id"`
	Name          string               `gorm:"size:100;not null" json:"name"`
	Price         decimal.Decimal      `gorm:"type:decimal(19,2);not null" json:"price"`
	Rooms         int                  `json:"rooms"`
	Sqft2         int                  `json:"sqft2"`
	ImageURL      string               `gorm:"size:255" json:"image_url"`
	Status        domain.ProductStatus `gorm:"size:20;not null;default:'AVAILABLE'" json:"status"`
	OwnerClientID *uint                `gorm:"index" json:"owner_client_id"`
	CreatedAt     time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time            `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Owner *Client `gorm:"foreignKey:OwnerClientID" json:"owner,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// Job is a static employment catalog entry
type Job struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Title        string          `gorm:"size:100;not null" json:"title"`
	Employer     string          `gorm:"size:100;not null" json:"employer"`
	AnnualSalary decimal.Decimal `gorm:"type:decimal(19,2);not null" json:"annual_salary"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Job) TableName() string {
	return "jobs"
}

// Rental is a static rental catalog entry
type Rental struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	MonthlyRent decimal.Decimal `gorm:"type:decimal(19,2);not null" json:"monthly_rent"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Rental) TableName() string {
	return "rentals"
}

// ============================================================
// Lending Tables
// ============================================================

// Loan is an unsecured loan application
type Loan struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	SlotID    int               `gorm:"index;not null" json:"slot_id"`
	ClientID  uint              `gorm:"index;not null" json:"client_id"`
	Amount    decimal.Decimal   `gorm:"type:decimal(19,2);not null" json:"amount"`
	TermYears int               `gorm:"not null" json:"term_years"`
	Status    domain.LoanStatus `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Client *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

// Mortgage is a property-backed loan application
type Mortgage struct {
	ID             uint                  `gorm:"primaryKey" json:"id"`
	SlotID         int                   `gorm:"index;not null" json:"slot_id"`
	ClientID       uint                  `gorm:"index;not null" json:"client_id"`
	ProductID      uint                  `gorm:"index;not null" json:"product_id"`
	PropertyPrice  decimal.Decimal       `gorm:"type:decimal(19,2);not null" json:"property_price"`
	DownPayment    decimal.Decimal       `gorm:"type:decimal(19,2);not null" json:"down_payment"`
	LoanAmount     decimal.Decimal       `gorm:"type:decimal(19,2);not null" json:"loan_amount"`
	TermYears      int                   `gorm:"not null" json:"term_years"`
	InterestRate   decimal.Decimal       `gorm:"type:decimal(7,4);not null" json:"interest_rate"`
	MonthlyPayment *decimal.Decimal      `gorm:"type:decimal(19,2)" json:"monthly_payment"`
	Status         domain.MortgageStatus `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	CreatedAt      time.Time             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time             `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Client  *Client  `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (Mortgage) TableName() string {
	return "mortgages"
}

// ClientLiving is a client's single active living arrangement
type ClientLiving struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	SlotID      int               `gorm:"index;not null" json:"slot_id"`
	ClientID    uint              `gorm:"uniqueIndex;not null" json:"client_id"`
	LivingType  domain.LivingType `gorm:"size:20;not null;default:'NONE'" json:"living_type"`
	RentalID    *uint             `json:"rental_id"`
	ProductID   *uint             `json:"product_id"`
	MonthlyRent decimal.Decimal   `gorm:"type:decimal(19,2);not null" json:"monthly_rent"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Client *Client `gorm:"foreignKey:ClientID" json:"-"`
	Rental *Rental `gorm:"foreignKey:RentalID" json:"rental,omitempty"`
}

func (ClientLiving) TableName() string {
	return "client_livings"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Auth
		&User{},
		&RefreshToken{},
		// Simulation
		&BankState{},
		&Client{},
		&Transaction{},
		&InvestmentEvent{},
		// Catalogs
		&Product{},
		&Job{},
		&Rental{},
		// Lending & Living
		&Loan{},
		&Mortgage{},
		&ClientLiving{},
	)
}
