package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/identity-merge/internal/model"
)

var _ model.AccountDirectory = (*AccountRepository)(nil)

const accountColumns = `a.id, a.user_name, a.email, a.email_confirmed, a.password_hash, a.created_at, a.updated_at`

type AccountRepository struct {
	db DBTX
}

func NewAccountRepository(db DBTX) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

func scanAccount(row pgx.Row) (model.Account, error) {
	var account model.Account
	err := row.Scan(
		&account.ID, &account.UserName, &account.Email, &account.EmailConfirmed,
		&account.PasswordHash, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, err
	}
	return account, nil
}

func (r *AccountRepository) Create(ctx context.Context, account model.Account) (saved model.Account, err error) {
	defer record("accounts", "create", time.Now(), &err)

	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	query := `INSERT INTO accounts AS a (id, user_name, email, email_confirmed, password_hash, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + accountColumns

	saved, err = scanAccount(r.db.QueryRow(ctx, query,
		account.ID, account.UserName, account.Email, account.EmailConfirmed,
		account.PasswordHash, account.CreatedAt, account.UpdatedAt,
	))
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}
	return saved, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id uuid.UUID) (account model.Account, err error) {
	defer record("accounts", "find_by_id", time.Now(), &err)

	query := `SELECT ` + accountColumns + ` FROM accounts a WHERE a.id = $1`
	account, err = scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}
	return account, err
}

func (r *AccountRepository) FindByName(ctx context.Context, userName string) (account model.Account, err error) {
	defer record("accounts", "find_by_name", time.Now(), &err)

	query := `SELECT ` + accountColumns + ` FROM accounts a WHERE a.user_name = $1`
	account, err = scanAccount(r.db.QueryRow(ctx, query, userName))
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Account{}, fmt.Errorf("failed to get account by name: %w", err)
	}
	return account, err
}

// FindByEmail looks up the primary email, ignoring case.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (account model.Account, err error) {
	defer record("accounts", "find_by_email", time.Now(), &err)

	query := `SELECT ` + accountColumns + ` FROM accounts a
			  WHERE lower(a.email) = lower($1) AND a.email <> ''
			  ORDER BY a.created_at LIMIT 1`
	account, err = scanAccount(r.db.QueryRow(ctx, query, email))
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Account{}, fmt.Errorf("failed to get account by email: %w", err)
	}
	return account, err
}

func (r *AccountRepository) FindByLogin(ctx context.Context, provider, providerKey string) (account model.Account, err error) {
	defer record("accounts", "find_by_login", time.Now(), &err)

	query := `SELECT ` + accountColumns + ` FROM accounts a
			  JOIN account_logins l ON l.account_id = a.id
			  WHERE l.provider = $1 AND l.provider_key = $2`
	account, err = scanAccount(r.db.QueryRow(ctx, query, provider, providerKey))
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Account{}, fmt.Errorf("failed to get account by login: %w", err)
	}
	return account, err
}

func (r *AccountRepository) CheckPassword(_ context.Context, account model.Account, password string) (bool, error) {
	if len(account.PasswordHash) == 0 {
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("failed to compare password hash: %w", err)
	}
	return true, nil
}

func (r *AccountRepository) SetEmail(ctx context.Context, id uuid.UUID, email string, confirmed bool) (err error) {
	defer record("accounts", "set_email", time.Now(), &err)

	query := `UPDATE accounts SET email = $2, email_confirmed = $3, updated_at = now() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, email, confirmed)
	if err != nil {
		return fmt.Errorf("failed to set account email: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) SetEmailConfirmed(ctx context.Context, id uuid.UUID, confirmed bool) (err error) {
	defer record("accounts", "set_email_confirmed", time.Now(), &err)

	query := `UPDATE accounts SET email_confirmed = $2, updated_at = now() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, confirmed)
	if err != nil {
		return fmt.Errorf("failed to confirm account email: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Delete removes the account. Roles, logins, claims and email records cascade.
func (r *AccountRepository) Delete(ctx context.Context, id uuid.UUID) (err error) {
	defer record("accounts", "delete", time.Now(), &err)

	tag, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) GetRoles(ctx context.Context, id uuid.UUID) (roles []string, err error) {
	defer record("accounts", "get_roles", time.Now(), &err)

	rows, err := r.db.Query(ctx, `SELECT role FROM account_roles WHERE account_id = $1 ORDER BY role`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get account roles: %w", err)
	}
	roles, err = pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan account roles: %w", err)
	}
	return roles, nil
}

// AddToRoles adds the account to every role in one statement. Existing memberships are kept.
func (r *AccountRepository) AddToRoles(ctx context.Context, id uuid.UUID, roles []string) (err error) {
	defer record("accounts", "add_to_roles", time.Now(), &err)

	if len(roles) == 0 {
		return nil
	}
	query := `INSERT INTO account_roles (account_id, role)
			  SELECT $1, unnest($2::text[])
			  ON CONFLICT DO NOTHING`
	if _, err = r.db.Exec(ctx, query, id, roles); err != nil {
		return fmt.Errorf("failed to add account to roles: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetLogins(ctx context.Context, id uuid.UUID) (logins []model.LoginInfo, err error) {
	defer record("accounts", "get_logins", time.Now(), &err)

	query := `SELECT provider, provider_key, display_name FROM account_logins
			  WHERE account_id = $1 ORDER BY provider, provider_key`
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get account logins: %w", err)
	}
	logins, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.LoginInfo, error) {
		var l model.LoginInfo
		err := row.Scan(&l.Provider, &l.ProviderKey, &l.DisplayName)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan account logins: %w", err)
	}
	return logins, nil
}

func (r *AccountRepository) AddLogin(ctx context.Context, id uuid.UUID, login model.LoginInfo) (err error) {
	defer record("accounts", "add_login", time.Now(), &err)

	query := `INSERT INTO account_logins (provider, provider_key, display_name, account_id)
			  VALUES ($1, $2, $3, $4)`
	if _, err = r.db.Exec(ctx, query, login.Provider, login.ProviderKey, login.DisplayName, id); err != nil {
		return fmt.Errorf("failed to add account login: %w", err)
	}
	return nil
}

func (r *AccountRepository) RemoveLogin(ctx context.Context, id uuid.UUID, provider, providerKey string) (err error) {
	defer record("accounts", "remove_login", time.Now(), &err)

	query := `DELETE FROM account_logins WHERE account_id = $1 AND provider = $2 AND provider_key = $3`
	if _, err = r.db.Exec(ctx, query, id, provider, providerKey); err != nil {
		return fmt.Errorf("failed to remove account login: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetClaims(ctx context.Context, id uuid.UUID) (claims []model.Claim, err error) {
	defer record("accounts", "get_claims", time.Now(), &err)

	query := `SELECT claim_type, claim_value FROM account_claims WHERE account_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get account claims: %w", err)
	}
	claims, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Claim, error) {
		var c model.Claim
		err := row.Scan(&c.Type, &c.Value)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan account claims: %w", err)
	}
	return claims, nil
}

// AddClaims inserts all claims in one statement, keeping their order.
func (r *AccountRepository) AddClaims(ctx context.Context, id uuid.UUID, claims []model.Claim) (err error) {
	defer record("accounts", "add_claims", time.Now(), &err)

	if len(claims) == 0 {
		return nil
	}
	types := make([]string, len(claims))
	values := make([]string, len(claims))
	for i, c := range claims {
		types[i] = c.Type
		values[i] = c.Value
	}
	query := `INSERT INTO account_claims (account_id, claim_type, claim_value)
			  SELECT $1, t.claim_type, t.claim_value
			  FROM unnest($2::text[], $3::text[]) WITH ORDINALITY AS t(claim_type, claim_value, n)
			  ORDER BY t.n`
	if _, err = r.db.Exec(ctx, query, id, types, values); err != nil {
		return fmt.Errorf("failed to add account claims: %w", err)
	}
	return nil
}
