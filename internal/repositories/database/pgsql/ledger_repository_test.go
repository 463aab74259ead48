package pgsql

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fin_manager_app/internal/core/ports/repositories"
	"github.com/SscSPs/fin_manager_app/internal/core/services"
	"github.com/SscSPs/fin_manager_app/internal/dto"
	migrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// LedgerIntegrationSuite runs the ledger against a real Postgres named by PGSQL_TEST_URL.
type LedgerIntegrationSuite struct {
	suite.Suite
	ctx      context.Context
	pool     *pgxpool.Pool
	ledger   portsrepo.LedgerUnitOfWork
	entityID string
	fromID   string
	toID     string
}

func TestLedgerIntegrationSuite(t *testing.T) {
	url := os.Getenv("PGSQL_TEST_URL")
	if url == "" {
		t.Skip("PGSQL_TEST_URL not set")
	}
	suite.Run(t, &LedgerIntegrationSuite{})
}

func (s *LedgerIntegrationSuite) SetupSuite() {
	url := os.Getenv("PGSQL_TEST_URL")
	m, err := migrate.New("file://../../../../migrations", url)
	s.Require().NoError(err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		s.Require().NoError(err)
	}

	s.ctx = context.Background()
	s.pool, err = pgxpool.New(s.ctx, url)
	s.Require().NoError(err)
	s.ledger = newPgxLedger(BaseRepository{Pool: s.pool, Timeout: 5 * time.Second})
}

func (s *LedgerIntegrationSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *LedgerIntegrationSuite) SetupTest() {
	base := BaseRepository{Pool: s.pool, Timeout: 5 * time.Second}
	now := time.Now()

	s.entityID = "ent-" + uuid.NewString()
	s.Require().NoError(newPgxEntityRepository(base).SaveEntity(s.ctx, domain.Entity{
		EntityID: s.entityID, Name: "Ledger Test", EntityType: domain.EntityBusiness,
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}))

	// The source id sorts after the destination so lock order differs from argument order.
	s.fromID = "z-acc-" + uuid.NewString()
	s.toID = "a-acc-" + uuid.NewString()
	accounts := newPgxAccountRepository(base)
	for id, balance := range map[string]int64{s.fromID: 1000, s.toID: 200} {
		s.Require().NoError(accounts.SaveAccount(s.ctx, domain.Account{
			AccountID: id, Name: id, CurrencyCode: "USD", Balance: decimal.NewFromInt(balance), IsActive: true,
			AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
		}))
	}
}

func (s *LedgerIntegrationSuite) balance(accountID string) decimal.Decimal {
	var b decimal.Decimal
	s.Require().NoError(s.pool.QueryRow(s.ctx, `SELECT balance FROM accounts WHERE account_id = $1`, accountID).Scan(&b))
	return b
}

func (s *LedgerIntegrationSuite) transactionCount() int {
	var n int
	s.Require().NoError(s.pool.QueryRow(s.ctx, `SELECT COUNT(*) FROM transactions WHERE entity_id = $1`, s.entityID).Scan(&n))
	return n
}

func (s *LedgerIntegrationSuite) TestRunInTx_ErrorRollsBackBalanceWrites() {
	boom := errors.New("boom")
	err := s.ledger.RunInTx(s.ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		if err := tx.SetAccountBalance(ctx, s.fromID, decimal.Zero, time.Now()); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)
	s.True(decimal.NewFromInt(1000).Equal(s.balance(s.fromID)))
}

func (s *LedgerIntegrationSuite) TestRunInTx_FailedInsertRollsBack() {
	err := s.ledger.RunInTx(s.ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		if err := tx.SetAccountBalance(ctx, s.fromID, decimal.NewFromInt(1), time.Now()); err != nil {
			return err
		}
		return tx.InsertTransaction(ctx, domain.Transaction{
			TransactionID:   uuid.NewString(),
			EntityID:        "missing-entity",
			Amount:          decimal.NewFromInt(5),
			TransactionType: domain.Expense,
			Date:            time.Now(),
		})
	})
	s.Error(err)
	s.True(decimal.NewFromInt(1000).Equal(s.balance(s.fromID)))
	s.Zero(s.transactionCount())
}

func (s *LedgerIntegrationSuite) TestLockAccounts_HoldsRowsUntilCommit() {
	locked := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- s.ledger.RunInTx(s.ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
			accounts, err := tx.LockAccounts(ctx, []string{s.fromID, s.toID})
			if err != nil {
				return err
			}
			if len(accounts) != 2 {
				return errors.New("expected both accounts locked")
			}
			close(locked)
			<-release
			return nil
		})
	}()
	<-locked

	waitCtx, cancel := context.WithTimeout(s.ctx, 300*time.Millisecond)
	defer cancel()
	err := s.ledger.RunInTx(waitCtx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		_, err := tx.LockAccounts(ctx, []string{s.toID})
		return err
	})
	s.Error(err, "second lock must wait for the first transaction")

	close(release)
	s.Require().NoError(<-done)

	err = s.ledger.RunInTx(s.ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		accounts, err := tx.LockAccounts(ctx, []string{s.toID, "no-such-account"})
		if err != nil {
			return err
		}
		s.Len(accounts, 1)
		return nil
	})
	s.NoError(err)
}

func (s *LedgerIntegrationSuite) TestTransfer_StoredBalancesConserveMoney() {
	svc := services.NewTransferService(s.ledger, s.entityID)

	_, err := svc.Transfer(s.ctx, dto.TransferRequest{FromAccountID: s.fromID, ToAccountID: s.toID, Amount: "1.0001"}, "user-1")
	s.Require().NoError(err)
	_, err = svc.Transfer(s.ctx, dto.TransferRequest{FromAccountID: s.fromID, ToAccountID: s.toID, Amount: "1.00005"}, "user-1")
	s.Require().Error(err)

	from, to := s.balance(s.fromID), s.balance(s.toID)
	s.Equal("998.9999", from.StringFixed(4))
	s.Equal("201.0001", to.StringFixed(4))
	s.True(from.Add(to).Equal(decimal.NewFromInt(1200)))
	s.Equal(2, s.transactionCount())
}
