package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shariqwaseem/sw-clone/internal/models"
	"github.com/shariqwaseem/sw-clone/internal/storage"
)

// CreateGroup persists a new group and its creator as the admin member, in
// one transaction.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group, creator *models.GroupMember) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if group.CreatedAt == 0 {
		group.CreatedAt = now
	}
	group.UpdatedAt = now

	creator.GroupID = group.ID
	if creator.JoinedAt == 0 {
		creator.JoinedAt = now
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, `
		INSERT INTO groups (id, name, currency, created_by, created_at, updated_at)
		VALUES (:id, :name, :currency, :created_by, :created_at, :updated_at)`,
		group,
	); err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	if _, err := tx.NamedExecContext(ctx, `
		INSERT INTO group_members (group_id, uid, email, display_name, role, status, joined_at)
		VALUES (:group_id, :uid, :email, :display_name, :role, :status, :joined_at)`,
		creator,
	); err != nil {
		return fmt.Errorf("failed to insert creator membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by ID.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	var group models.Group
	err := s.db.GetContext(ctx, &group,
		`SELECT * FROM groups WHERE id = ?`, groupID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return &group, nil
}

// ListGroupsByMember retrieves all groups where uid is an active member,
// newest first.
func (s *SQLiteStore) ListGroupsByMember(ctx context.Context, uid string) ([]models.Group, error) {
	var groups []models.Group
	err := s.db.SelectContext(ctx, &groups, `
		SELECT g.* FROM groups g
		JOIN group_members m ON m.group_id = g.id
		WHERE m.uid = ? AND m.status = ?
		ORDER BY g.created_at DESC`,
		uid, models.StatusActive,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups by member: %w", err)
	}
	return groups, nil
}

// DeleteGroup removes a group. Members, expenses and payments cascade.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM groups WHERE id = ?`, groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	return nil
}

// ListGroupMembers retrieves every membership row of a group, including
// removed members, ordered by join time.
func (s *SQLiteStore) ListGroupMembers(ctx context.Context, groupID string) ([]models.GroupMember, error) {
	var members []models.GroupMember
	err := s.db.SelectContext(ctx, &members, `
		SELECT * FROM group_members WHERE group_id = ? ORDER BY joined_at, uid`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	return members, nil
}

// GetGroupMember retrieves one membership row. Returns nil, nil when uid has
// never been a member of the group.
func (s *SQLiteStore) GetGroupMember(ctx context.Context, groupID, uid string) (*models.GroupMember, error) {
	var member models.GroupMember
	err := s.db.GetContext(ctx, &member,
		`SELECT * FROM group_members WHERE group_id = ? AND uid = ?`, groupID, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group member: %w", err)
	}
	return &member, nil
}

// UpsertGroupMember inserts a membership row or replaces an existing one
// (rejoin, role change, status change).
func (s *SQLiteStore) UpsertGroupMember(ctx context.Context, member *models.GroupMember) error {
	if member.JoinedAt == 0 {
		member.JoinedAt = time.Now().Unix()
	}
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO group_members (group_id, uid, email, display_name, role, status, joined_at)
		VALUES (:group_id, :uid, :email, :display_name, :role, :status, :joined_at)
		ON CONFLICT (group_id, uid) DO UPDATE SET
			email = excluded.email,
			display_name = excluded.display_name,
			role = excluded.role,
			status = excluded.status`,
		member,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert group member: %w", err)
	}
	return nil
}
