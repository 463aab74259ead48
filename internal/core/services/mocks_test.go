package services_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/fin_manager_app/internal/apperrors"
	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fin_manager_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, userID string, passwordHash string, now time.Time) error {
	args := m.Called(ctx, userID, passwordHash, now)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	var acc *domain.Account
	if args.Get(0) != nil {
		acc = args.Get(0).(*domain.Account)
	}
	return acc, args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, activeOnly, limit, offset)
	var accs []domain.Account
	if args.Get(0) != nil {
		accs = args.Get(0).([]domain.Account)
	}
	return accs, args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) TotalsByType(ctx context.Context, filter domain.TransactionFilter) (map[domain.TransactionType]domain.TypeTotal, error) {
	args := m.Called(ctx, filter)
	var totals map[domain.TransactionType]domain.TypeTotal
	if args.Get(0) != nil {
		totals = args.Get(0).(map[domain.TransactionType]domain.TypeTotal)
	}
	return totals, args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

// --- Mock UnitRepository ---
type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) SaveUnit(ctx context.Context, unit domain.Unit) error {
	return m.Called(ctx, unit).Error(0)
}

func (m *MockUnitRepository) FindUnitByID(ctx context.Context, unitID string) (*domain.Unit, error) {
	args := m.Called(ctx, unitID)
	var unit *domain.Unit
	if args.Get(0) != nil {
		unit = args.Get(0).(*domain.Unit)
	}
	return unit, args.Error(1)
}

func (m *MockUnitRepository) ListUnitsByEntity(ctx context.Context, entityID string) ([]domain.Unit, error) {
	args := m.Called(ctx, entityID)
	var units []domain.Unit
	if args.Get(0) != nil {
		units = args.Get(0).([]domain.Unit)
	}
	return units, args.Error(1)
}

func (m *MockUnitRepository) UpdateUnit(ctx context.Context, unit domain.Unit) error {
	return m.Called(ctx, unit).Error(0)
}

func (m *MockUnitRepository) DeleteUnit(ctx context.Context, unitID string) error {
	return m.Called(ctx, unitID).Error(0)
}

var _ portsrepo.UnitRepositoryFacade = (*MockUnitRepository)(nil)

// --- Mock EntityRepository ---
type MockEntityRepository struct {
	mock.Mock
}

func (m *MockEntityRepository) SaveEntity(ctx context.Context, entity domain.Entity) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *MockEntityRepository) FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error) {
	args := m.Called(ctx, entityID)
	var e *domain.Entity
	if args.Get(0) != nil {
		e = args.Get(0).(*domain.Entity)
	}
	return e, args.Error(1)
}

func (m *MockEntityRepository) ListEntities(ctx context.Context, limit int, offset int) ([]domain.Entity, error) {
	args := m.Called(ctx, limit, offset)
	var es []domain.Entity
	if args.Get(0) != nil {
		es = args.Get(0).([]domain.Entity)
	}
	return es, args.Error(1)
}

func (m *MockEntityRepository) UpdateEntity(ctx context.Context, entity domain.Entity) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *MockEntityRepository) DeleteEntity(ctx context.Context, entityID string) error {
	return m.Called(ctx, entityID).Error(0)
}

var _ portsrepo.EntityRepositoryFacade = (*MockEntityRepository)(nil)

// --- In-memory ledger ---

// memoryLedger is a LedgerUnitOfWork over in-memory maps. Writes inside RunInTx are
// staged and only applied when fn returns nil, mirroring commit/rollback.
type memoryLedger struct {
	mu           sync.Mutex
	accounts     map[string]domain.Account
	entities     map[string]bool
	transactions []domain.Transaction
	// failInsertAfter makes the n-th InsertTransaction call fail (1-based); 0 disables.
	failInsertAfter int
}

func newMemoryLedger(accounts ...domain.Account) *memoryLedger {
	l := &memoryLedger{accounts: map[string]domain.Account{}, entities: map[string]bool{}}
	for _, a := range accounts {
		l.accounts[a.AccountID] = a
	}
	return l
}

func (l *memoryLedger) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx := &memoryLedgerTx{ledger: l, balances: map[string]decimal.Decimal{}}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	for id, bal := range tx.balances {
		acc := l.accounts[id]
		acc.Balance = bal
		l.accounts[id] = acc
	}
	l.transactions = append(l.transactions, tx.inserted...)
	return nil
}

func (l *memoryLedger) balance(id string) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.accounts[id].Balance
}

type memoryLedgerTx struct {
	ledger   *memoryLedger
	balances map[string]decimal.Decimal
	inserted []domain.Transaction
	inserts  int
}

func (t *memoryLedgerTx) LockAccounts(_ context.Context, ids []string) (map[string]domain.Account, error) {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	out := map[string]domain.Account{}
	for _, id := range sorted {
		if acc, ok := t.ledger.accounts[id]; ok {
			out[id] = acc
		}
	}
	return out, nil
}

func (t *memoryLedgerTx) EntityExists(_ context.Context, entityID string) (bool, error) {
	return t.ledger.entities[entityID], nil
}

func (t *memoryLedgerTx) SetAccountBalance(_ context.Context, accountID string, balance decimal.Decimal, _ time.Time) error {
	if _, ok := t.ledger.accounts[accountID]; !ok {
		return apperrors.ErrNotFound
	}
	t.balances[accountID] = balance
	return nil
}

func (t *memoryLedgerTx) InsertTransaction(_ context.Context, txn domain.Transaction) error {
	t.inserts++
	if t.ledger.failInsertAfter > 0 && t.inserts >= t.ledger.failInsertAfter {
		return apperrors.ErrUnavailable
	}
	t.inserted = append(t.inserted, txn)
	return nil
}

// --- Fake managed provider ---

type fakeProviderClient struct {
	users     map[string]string // email -> password
	access    map[string]*domain.ProviderUser
	refreshes map[string]*domain.ProviderSession
	down      bool
}

func (f *fakeProviderClient) PasswordLogin(_ context.Context, email, password string) (*domain.ProviderSession, error) {
	if f.down {
		return nil, apperrors.ErrUnavailable
	}
	if pw, ok := f.users[email]; !ok || pw != password {
		return nil, apperrors.ErrUnauthorized
	}
	return &domain.ProviderSession{AccessToken: "access-" + email, RefreshToken: "refresh-" + email}, nil
}

func (f *fakeProviderClient) Refresh(_ context.Context, refreshToken string) (*domain.ProviderSession, error) {
	if s, ok := f.refreshes[refreshToken]; ok {
		return s, nil
	}
	return nil, apperrors.ErrUnauthorized
}

func (f *fakeProviderClient) FetchUser(_ context.Context, accessToken string) (*domain.ProviderUser, error) {
	if f.down {
		return nil, apperrors.ErrUnavailable
	}
	if u, ok := f.access[accessToken]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUnauthorized
}
