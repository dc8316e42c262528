package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/identity-merge/internal/model"
)

var _ model.EmailStore = (*EmailRepository)(nil)

type EmailRepository struct {
	db DBTX
}

func NewEmailRepository(db DBTX) *EmailRepository {
	return &EmailRepository{
		db: db,
	}
}

// AddEmail updates the binding of rows matching (account, email, provider) and
// inserts a new row when none matched.
func (r *EmailRepository) AddEmail(ctx context.Context, accountID uuid.UUID, email string, login *model.LoginInfo) (err error) {
	defer record("emails", "add", time.Now(), &err)

	var provider, providerKey *string
	if login != nil {
		provider, providerKey = &login.Provider, &login.ProviderKey
	}

	update := `UPDATE account_emails SET login_provider = $3, login_provider_key = $4
			   WHERE account_id = $1 AND email = $2 AND login_provider IS NOT DISTINCT FROM $3`
	tag, err := r.db.Exec(ctx, update, accountID, email, provider, providerKey)
	if err != nil {
		return fmt.Errorf("failed to update email record: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	insert := `INSERT INTO account_emails (email, account_id, login_provider, login_provider_key)
			   VALUES ($1, $2, $3, $4)`
	if _, err = r.db.Exec(ctx, insert, email, accountID, provider, providerKey); err != nil {
		return fmt.Errorf("failed to insert email record: %w", err)
	}
	return nil
}

func (r *EmailRepository) RemoveEmail(ctx context.Context, accountID uuid.UUID, provider, providerKey string) (err error) {
	defer record("emails", "remove", time.Now(), &err)

	query := `DELETE FROM account_emails
			  WHERE account_id = $1 AND login_provider = $2 AND login_provider_key = $3`
	if _, err = r.db.Exec(ctx, query, accountID, provider, providerKey); err != nil {
		return fmt.Errorf("failed to remove email record: %w", err)
	}
	return nil
}

func (r *EmailRepository) FindAccountByEmail(ctx context.Context, email string) (account model.Account, err error) {
	defer record("emails", "find_account", time.Now(), &err)

	query := `SELECT ` + accountColumns + ` FROM account_emails e
			  JOIN accounts a ON a.id = e.account_id
			  WHERE e.email = $1
			  ORDER BY e.id LIMIT 1`
	account, err = scanAccount(r.db.QueryRow(ctx, query, email))
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Account{}, fmt.Errorf("failed to find account by email record: %w", err)
	}
	return account, err
}

func (r *EmailRepository) GetEmails(ctx context.Context, accountID uuid.UUID, email *string) (emails []model.EmailInfo, err error) {
	defer record("emails", "get", time.Now(), &err)

	query := `SELECT e.email, e.login_provider, e.login_provider_key, l.display_name
			  FROM account_emails e
			  LEFT JOIN account_logins l
			    ON l.provider = e.login_provider AND l.provider_key = e.login_provider_key
			  WHERE e.account_id = $1 AND ($2::text IS NULL OR e.email = $2::text)
			  ORDER BY e.id`
	rows, err := r.db.Query(ctx, query, accountID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get email records: %w", err)
	}
	emails, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.EmailInfo, error) {
		var (
			info                           model.EmailInfo
			provider, providerKey, display *string
		)
		if err := row.Scan(&info.Email, &provider, &providerKey, &display); err != nil {
			return model.EmailInfo{}, err
		}
		if provider != nil && providerKey != nil {
			info.Login = &model.LoginInfo{Provider: *provider, ProviderKey: *providerKey}
			if display != nil {
				info.Login.DisplayName = *display
			}
		}
		return info, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan email records: %w", err)
	}
	return emails, nil
}
