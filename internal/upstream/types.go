package upstream

// DTOs are mirrored field-for-field from the platform API's JSON. The
// dashboard adds no invariants beyond optional-field presence.

type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// Task is the user-facing weekly task.
type Task struct {
	ID          string `json:"_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Date        string `json:"date"`
	Completed   bool   `json:"completed"`
	CompletedAt string `json:"completedAt,omitempty"`
}

// AdminTask is the task template admins manage.
type AdminTask struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// TaskInput is one task in a create or bulk-create request.
type TaskInput struct {
	Name        string `json:"name"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

type KYC struct {
	AadharNumber       string `json:"aadharNumber,omitempty"`
	AadharFrontURL     string `json:"aadharFrontUrl,omitempty"`
	AadharBackURL      string `json:"aadharBackUrl,omitempty"`
	PanNumber          string `json:"panNumber,omitempty"`
	PanCardURL         string `json:"panCardUrl,omitempty"`
	KycSubmittedAt     string `json:"kycSubmittedAt,omitempty"`
	KycVerifiedAt      string `json:"kycVerifiedAt,omitempty"`
	KycStatus          string `json:"kycStatus,omitempty"` // pending | approved | rejected | none
	KycRejectionReason string `json:"kycRejectionReason,omitempty"`
}

type User struct {
	ID                string   `json:"_id"`
	Name              string   `json:"name"`
	Email             string   `json:"email,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	Role              string   `json:"role"`
	Status            string   `json:"status"`
	IsDisabled        bool     `json:"isDisabled"`
	IncompleteProfile bool     `json:"incompleteProfile"`
	IsKYCCompleted    bool     `json:"isKYCCompleted"`
	KYC               *KYC     `json:"kyc,omitempty"`
	Address           *Address `json:"address,omitempty"`
	Wallet            float64  `json:"wallet,omitempty"`
	LeftCarry         float64  `json:"leftCarry,omitempty"`
	RightCarry        float64  `json:"rightCarry,omitempty"`
	ReferralCode      string   `json:"referralCode,omitempty"`
	ReferredOn        string   `json:"referredOn,omitempty"`
	ReferredBy        string   `json:"referredBy,omitempty"`
	CreatedAt         string   `json:"createdAt,omitempty"`
	UpdatedAt         string   `json:"updatedAt,omitempty"`
}

type PaymentUser struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Status string `json:"status"`
}

type PaymentPackage struct {
	ID    string  `json:"_id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type Payment struct {
	ID        string         `json:"_id"`
	User      PaymentUser    `json:"user"`
	Package   PaymentPackage `json:"package"`
	OrderID   string         `json:"orderId,omitempty"`
	PaymentID string         `json:"paymentId,omitempty"`
	Signature string         `json:"signature,omitempty"`
	Amount    float64        `json:"amount"`
	Status    string         `json:"status"` // CREATED | PAID | FAILED
	CreatedAt string         `json:"createdAt"`
	UpdatedAt string         `json:"updatedAt"`
}

type Package struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	TasksPerDay int      `json:"tasksPerDay"`
	TaskRate    float64  `json:"taskRate"`
	Features    []string `json:"features"`
	BV          string   `json:"bv"`
}

type Transaction struct {
	ID             string  `json:"_id"`
	Type           string  `json:"type"` // credit | debit
	Amount         float64 `json:"amount"`
	Description    string  `json:"description"`
	RelatedOrderID string  `json:"relatedOrderId,omitempty"`
	Date           string  `json:"date"`
}

type WalletData struct {
	WalletBalance float64       `json:"walletBalance"`
	Transactions  []Transaction `json:"transactions"`
}

type ReferredUser struct {
	ID                    string `json:"_id,omitempty"`
	Name                  string `json:"name"`
	Email                 string `json:"email"`
	CreatedAt             string `json:"createdAt"`
	Package               string `json:"package,omitempty"`
	IsAnyPackagePurchased bool   `json:"isAnyPackagePurchased,omitempty"`
	ReferredOn            string `json:"referredOn,omitempty"` // left | right
}

type ReferralData struct {
	MyReferralCode           string         `json:"myReferralCode"`
	TotalSuccessfulReferrals int            `json:"totalSuccessfulReferrals"`
	ReferredUsers            []ReferredUser `json:"referredUsers"`
}

// WeekRecord is one row of the weekly binary-matching payout history. The BV
// arithmetic is the platform's; the dashboard only displays it.
type WeekRecord struct {
	ID            string  `json:"_id"`
	Week          int     `json:"week"`
	From          string  `json:"from"`
	To            string  `json:"to"`
	LeftBV        float64 `json:"leftbv"`
	RightBV       float64 `json:"rightbv"`
	MatchedBV     float64 `json:"matchedBV"`
	LeftCarryRem  float64 `json:"leftCarryRem"`
	RightCarryRem float64 `json:"rightCarryRem"`
}

type PromotionalIncome struct {
	Weeks      []WeekRecord `json:"promotionalIncome"`
	LeftCarry  float64      `json:"leftCarry"`
	RightCarry float64      `json:"rightCarry"`
}

type DashboardData struct {
	PendingTasks                           int     `json:"pendingTasks"`
	CompletedTasks                         int     `json:"completedTasks"`
	TotalReferredUsers                     int     `json:"totalReferredUsers"`
	LeftUsers                              int     `json:"leftUsers"`
	RightUsers                             int     `json:"rightUsers"`
	SuccessfulReferralsWhoPurchasedPackage int     `json:"successfulReferralsWhoPurchasedPackage"`
	TotalPromotionalIncome                 float64 `json:"totalPromotionalIncome"`
	WalletBalance                          float64 `json:"walletBalance"`
}

// UserPackage is the active package block on the profile page.
type UserPackage struct {
	ID          string  `json:"_id,omitempty"`
	Name        string  `json:"name,omitempty"`
	Price       float64 `json:"price,omitempty"`
	PurchasedAt string  `json:"purchasedAt,omitempty"`
	ExpiresAt   string  `json:"expiresAt,omitempty"`
}

type UserProfile struct {
	ID             string       `json:"_id"`
	Name           string       `json:"name"`
	Email          string       `json:"email,omitempty"`
	Phone          string       `json:"phone,omitempty"`
	Status         string       `json:"status,omitempty"`
	ReferralCode   string       `json:"referralCode,omitempty"`
	Wallet         float64      `json:"wallet,omitempty"`
	Address        *Address     `json:"address,omitempty"`
	KYC            *KYC         `json:"kyc,omitempty"`
	CurrentPackage *UserPackage `json:"currentPackage,omitempty"`
	CreatedAt      string       `json:"createdAt,omitempty"`
}

// TreeNode is one placement node in the referral binary tree.
type TreeNode struct {
	ID         string     `json:"_id"`
	Name       string     `json:"name"`
	Email      string     `json:"email,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	Status     string     `json:"status"`
	ReferredOn string     `json:"referredOn,omitempty"`
	Left       []TreeNode `json:"left"`
	Right      []TreeNode `json:"right"`
}

type RootUser struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Order is the payment-gateway order descriptor handed to the checkout widget.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}
