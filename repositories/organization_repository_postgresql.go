package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/portcullis-hq/portcullis-backend/models"
	"github.com/portcullis-hq/portcullis-backend/repositories/dbmodels"
)

const mutationAttempts = 5

// OrganizationRepositoryPostgresql persists the aggregate over three tables:
// organizations, organization_members and api_keys. Mutations use an
// optimistic concurrency token (the version column): the aggregate is loaded,
// the pure mutation applied, and the write only lands if the version has not
// moved. Lost races are retried with a fresh snapshot, which re-runs the
// invariant checks against the latest state.
type OrganizationRepositoryPostgresql struct {
	pool *pgxpool.Pool
}

func NewOrganizationRepositoryPostgresql(pool *pgxpool.Pool) *OrganizationRepositoryPostgresql {
	return &OrganizationRepositoryPostgresql{pool: pool}
}

func (repo *OrganizationRepositoryPostgresql) ExistsByName(ctx context.Context, name string) (bool, error) {
	org, err := SqlToOptionalModel(
		ctx,
		repo.pool,
		NewQueryBuilder().
			Select(dbmodels.SelectOrganizationColumns...).
			From(dbmodels.TABLE_ORGANIZATIONS).
			Where("lower(name) = lower(?)", name),
		dbmodels.AdaptOrganization,
	)
	if err != nil {
		return false, err
	}
	return org != nil, nil
}

func (repo *OrganizationRepositoryPostgresql) GetOrganization(ctx context.Context, organizationId string) (models.Organization, error) {
	return repo.getOrganization(ctx, repo.pool, organizationId)
}

func (repo *OrganizationRepositoryPostgresql) getOrganization(ctx context.Context, exec Executor, organizationId string) (models.Organization, error) {
	org, err := SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectOrganizationColumns...).
			From(dbmodels.TABLE_ORGANIZATIONS).
			Where("id = ?", organizationId),
		dbmodels.AdaptOrganization,
	)
	if err != nil {
		return models.Organization{}, err
	}

	org.Members, err = repo.getMembers(ctx, exec, organizationId)
	if err != nil {
		return models.Organization{}, err
	}

	org.ApiKeys, err = SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectApiKeyColumns...).
			From(dbmodels.TABLE_API_KEYS).
			Where("org_id = ?", organizationId).
			OrderBy("name"),
		dbmodels.AdaptApiKey,
	)
	if err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

func (repo *OrganizationRepositoryPostgresql) CreateOrganization(ctx context.Context, org models.Organization) error {
	tx, err := repo.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "starting transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = ExecBuilder(
		ctx,
		tx,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_ORGANIZATIONS).
			Columns("id", "name", "email", "signing_key_id", "version").
			Values(org.Id, org.Name, org.Email, org.SigningKeyId, org.Version),
	)
	if err != nil {
		if IsUniqueViolationError(err) {
			return errors.WithDetail(models.ErrOrganizationNameTaken, org.Name)
		}
		return err
	}

	if err := repo.writeMembers(ctx, tx, org); err != nil {
		return err
	}
	if err := repo.writeApiKeys(ctx, tx, org); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (repo *OrganizationRepositoryPostgresql) DeleteOrganization(ctx context.Context, organizationId string) error {
	tag, err := ExecBuilder(
		ctx,
		repo.pool,
		NewQueryBuilder().
			Delete(dbmodels.TABLE_ORGANIZATIONS).
			Where("id = ?", organizationId),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(models.NotFoundError, fmt.Sprintf("organization %s", organizationId))
	}
	// member and api key rows go away with the organization via ON DELETE CASCADE
	return nil
}

func (repo *OrganizationRepositoryPostgresql) GetMembers(ctx context.Context, organizationId string) ([]models.OrganizationMember, error) {
	// distinguish a missing organization from one with no members
	if _, err := repo.GetOrganization(ctx, organizationId); err != nil {
		return nil, err
	}
	return repo.getMembers(ctx, repo.pool, organizationId)
}

func (repo *OrganizationRepositoryPostgresql) getMembers(ctx context.Context, exec Executor, organizationId string) ([]models.OrganizationMember, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectOrganizationMemberColumns...).
			From(dbmodels.TABLE_ORGANIZATION_MEMBERS).
			Where("org_id = ?", organizationId).
			OrderBy("user_id"),
		dbmodels.AdaptOrganizationMember,
	)
}

func (repo *OrganizationRepositoryPostgresql) IsMember(ctx context.Context, userId models.UserId, organizationId string) (bool, error) {
	member, err := SqlToOptionalModel(
		ctx,
		repo.pool,
		NewQueryBuilder().
			Select(dbmodels.SelectOrganizationMemberColumns...).
			From(dbmodels.TABLE_ORGANIZATION_MEMBERS).
			Where("org_id = ?", organizationId).
			Where("user_id = ?", string(userId)),
		dbmodels.AdaptOrganizationMember,
	)
	if err != nil {
		return false, err
	}
	return member != nil, nil
}

func (repo *OrganizationRepositoryPostgresql) GetUserMemberships(ctx context.Context, userId models.UserId) ([]models.OrganizationMembership, error) {
	return SqlToListOfModels(
		ctx,
		repo.pool,
		NewQueryBuilder().
			Select("m.org_id", "o.name", "m.role").
			From(dbmodels.TABLE_ORGANIZATION_MEMBERS+" AS m").
			Join(dbmodels.TABLE_ORGANIZATIONS+" AS o ON o.id = m.org_id").
			Where("m.user_id = ?", string(userId)).
			OrderBy("o.name"),
		dbmodels.AdaptMembership,
	)
}

func (repo *OrganizationRepositoryPostgresql) MutateOrganization(
	ctx context.Context,
	organizationId string,
	mutation OrganizationMutation,
) (models.Organization, error) {
	return retry.DoWithData(
		func() (models.Organization, error) {
			return repo.mutateOnce(ctx, organizationId, mutation)
		},
		retry.Context(ctx),
		retry.Attempts(mutationAttempts),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, models.ErrConcurrentModification)
		}),
	)
}

func (repo *OrganizationRepositoryPostgresql) mutateOnce(
	ctx context.Context,
	organizationId string,
	mutation OrganizationMutation,
) (models.Organization, error) {
	snapshot, err := repo.GetOrganization(ctx, organizationId)
	if err != nil {
		return models.Organization{}, err
	}

	mutated, err := mutation(snapshot)
	if err != nil {
		return models.Organization{}, err
	}
	mutated.Version = snapshot.Version + 1

	tx, err := repo.pool.Begin(ctx)
	if err != nil {
		return models.Organization{}, errors.Wrap(err, "starting transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := ExecBuilder(
		ctx,
		tx,
		NewQueryBuilder().
			Update(dbmodels.TABLE_ORGANIZATIONS).
			Set("name", mutated.Name).
			Set("email", mutated.Email).
			Set("version", mutated.Version).
			Where("id = ?", organizationId).
			Where("version = ?", snapshot.Version),
	)
	if err != nil {
		if IsUniqueViolationError(err) {
			return models.Organization{}, errors.WithDetail(models.ErrOrganizationNameTaken, mutated.Name)
		}
		return models.Organization{}, err
	}
	if tag.RowsAffected() == 0 {
		return models.Organization{}, errors.WithDetail(models.ErrConcurrentModification, organizationId)
	}

	// the version check above serializes writers, a full rewrite of the
	// member and key rows is safe
	for _, table := range []string{dbmodels.TABLE_ORGANIZATION_MEMBERS, dbmodels.TABLE_API_KEYS} {
		if _, err := ExecBuilder(
			ctx,
			tx,
			NewQueryBuilder().Delete(table).Where("org_id = ?", organizationId),
		); err != nil {
			return models.Organization{}, err
		}
	}
	if err := repo.writeMembers(ctx, tx, mutated); err != nil {
		return models.Organization{}, err
	}
	if err := repo.writeApiKeys(ctx, tx, mutated); err != nil {
		return models.Organization{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Organization{}, errors.Wrap(err, "committing mutation")
	}
	return mutated, nil
}

func (repo *OrganizationRepositoryPostgresql) writeMembers(ctx context.Context, exec Executor, org models.Organization) error {
	if len(org.Members) == 0 {
		return nil
	}
	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_ORGANIZATION_MEMBERS).
		Columns("org_id", "user_id", "role")
	for _, member := range org.Members {
		query = query.Values(org.Id, string(member.UserId), int(member.Role))
	}
	_, err := ExecBuilder(ctx, exec, query)
	return err
}

func (repo *OrganizationRepositoryPostgresql) writeApiKeys(ctx context.Context, exec Executor, org models.Organization) error {
	if len(org.ApiKeys) == 0 {
		return nil
	}
	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_API_KEYS).
		Columns("key_id", "org_id", "name", "claims", "signed_token")
	for _, apiKey := range org.ApiKeys {
		claims, err := json.Marshal(apiKey.Claims)
		if err != nil {
			return errors.Wrapf(err, "encoding claims of api key %s", apiKey.KeyId)
		}
		query = query.Values(apiKey.KeyId, org.Id, apiKey.Name, claims, apiKey.SignedToken)
	}
	_, err := ExecBuilder(ctx, exec, query)
	return err
}
