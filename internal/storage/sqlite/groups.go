package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/DjangoClawd/superbowl-boxes/internal/models"
	"github.com/DjangoClawd/superbowl-boxes/internal/numbers"
	"github.com/DjangoClawd/superbowl-boxes/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// assignmentSlots orders the number-assignment slots for persistence.
var assignmentSlots = []string{"current", "q1", "q2", "q3", "q4"}

const groupColumns = `id, name, team1, team2, price_per_square, currency, visibility, invite_code,
	payout_q1, payout_q2, payout_q3, payout_q4, creator_fee,
	number_randomization, grid_size, creator, creator_name, creator_display,
	created_at, status, locked_at`

// CreateGroup persists a new group with all of its child rows.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO groups (`+groupColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		group.ID, group.Name, group.Team1, group.Team2, group.PricePerSquare,
		string(group.Currency), string(group.Visibility), nullIfEmpty(group.InviteCode),
		group.Payouts.Q1, group.Payouts.Q2, group.Payouts.Q3, group.Payouts.Q4, group.Payouts.CreatorFee,
		string(group.NumberRandomization), string(group.GridSize),
		group.Creator, group.CreatorName, group.CreatorDisplay,
		group.CreatedAt, string(group.Status), group.LockedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	if err := writeChildren(ctx, tx, group); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// PutGroup replaces the stored record for group.ID with the given snapshot.
func (s *SQLiteStore) PutGroup(ctx context.Context, group *models.Group) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE groups SET name = ?, team1 = ?, team2 = ?, price_per_square = ?, currency = ?,
		 visibility = ?, invite_code = ?,
		 payout_q1 = ?, payout_q2 = ?, payout_q3 = ?, payout_q4 = ?, creator_fee = ?,
		 number_randomization = ?, grid_size = ?, creator = ?, creator_name = ?, creator_display = ?,
		 created_at = ?, status = ?, locked_at = ?
		 WHERE id = ?`,
		group.Name, group.Team1, group.Team2, group.PricePerSquare, string(group.Currency),
		string(group.Visibility), nullIfEmpty(group.InviteCode),
		group.Payouts.Q1, group.Payouts.Q2, group.Payouts.Q3, group.Payouts.Q4, group.Payouts.CreatorFee,
		string(group.NumberRandomization), string(group.GridSize),
		group.Creator, group.CreatorName, group.CreatorDisplay,
		group.CreatedAt, string(group.Status), group.LockedAt,
		group.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	// Whole-record overwrite: drop and rewrite every child row.
	for _, table := range []string{"squares", "number_assignments", "quarter_results"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE group_id = ?", group.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if err := writeChildren(ctx, tx, group); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetGroup retrieves a fully hydrated group by id.
func (s *SQLiteStore) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+groupColumns+` FROM groups WHERE id = ?`, id)
	return s.hydrate(ctx, row)
}

// GetGroupByInviteCode retrieves a group by invite code, case-insensitively.
func (s *SQLiteStore) GetGroupByInviteCode(ctx context.Context, code string) (*models.Group, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+groupColumns+` FROM groups WHERE invite_code IS NOT NULL AND UPPER(invite_code) = UPPER(?)`,
		code)
	return s.hydrate(ctx, row)
}

// ListPublicGroups returns public, not-yet-completed groups, newest first.
func (s *SQLiteStore) ListPublicGroups(ctx context.Context) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM groups WHERE visibility = ? AND status != ? ORDER BY created_at DESC, id`,
		string(models.VisibilityPublic), string(models.StatusCompleted))
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	groups := make([]*models.Group, 0, len(ids))
	for _, id := range ids {
		group, err := s.GetGroup(ctx, id)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// DeleteGroup removes a group and its child rows, reporting whether a record
// existed.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete group: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected > 0, nil
}

// hydrate scans the group row and loads squares, assignments, and results.
func (s *SQLiteStore) hydrate(ctx context.Context, row *sql.Row) (*models.Group, error) {
	group := &models.Group{}
	var inviteCode sql.NullString
	err := row.Scan(
		&group.ID, &group.Name, &group.Team1, &group.Team2, &group.PricePerSquare,
		&group.Currency, &group.Visibility, &inviteCode,
		&group.Payouts.Q1, &group.Payouts.Q2, &group.Payouts.Q3, &group.Payouts.Q4, &group.Payouts.CreatorFee,
		&group.NumberRandomization, &group.GridSize,
		&group.Creator, &group.CreatorName, &group.CreatorDisplay,
		&group.CreatedAt, &group.Status, &group.LockedAt,
	)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	if inviteCode.Valid {
		group.InviteCode = inviteCode.String
	}

	if err := s.loadSquares(ctx, group); err != nil {
		return nil, err
	}
	if err := s.loadAssignments(ctx, group); err != nil {
		return nil, err
	}
	if err := s.loadResults(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// loadSquares rebuilds the full index-addressed square sequence. Only owned
// squares are stored; the rest are reconstructed empty.
func (s *SQLiteStore) loadSquares(ctx context.Context, group *models.Group) error {
	total := numbers.Config(group.GridSize).TotalSquares
	group.Squares = make([]models.Square, total)
	for i := range group.Squares {
		group.Squares[i].Index = i
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT idx, owner, owner_display, purchased_at FROM squares WHERE group_id = ?",
		group.ID)
	if err != nil {
		return fmt.Errorf("failed to get squares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sq models.Square
		if err := rows.Scan(&sq.Index, &sq.Owner, &sq.OwnerDisplay, &sq.PurchasedAt); err != nil {
			return fmt.Errorf("failed to scan square: %w", err)
		}
		if sq.Index >= 0 && sq.Index < total {
			group.Squares[sq.Index] = sq
		}
	}
	return rows.Err()
}

func (s *SQLiteStore) loadAssignments(ctx context.Context, group *models.Group) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT slot, row_numbers, col_numbers, assigned_at FROM number_assignments WHERE group_id = ?",
		group.ID)
	if err != nil {
		return fmt.Errorf("failed to get number assignments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var slot, rowJSON, colJSON string
		a := &models.NumberAssignment{}
		if err := rows.Scan(&slot, &rowJSON, &colJSON, &a.AssignedAt); err != nil {
			return fmt.Errorf("failed to scan number assignment: %w", err)
		}
		if err := json.Unmarshal([]byte(rowJSON), &a.RowNumbers); err != nil {
			return fmt.Errorf("failed to decode row numbers: %w", err)
		}
		if err := json.Unmarshal([]byte(colJSON), &a.ColNumbers); err != nil {
			return fmt.Errorf("failed to decode col numbers: %w", err)
		}
		switch slot {
		case "current":
			group.Numbers.Current = a
		case "q1":
			group.Numbers.Q1 = a
		case "q2":
			group.Numbers.Q2 = a
		case "q3":
			group.Numbers.Q3 = a
		case "q4":
			group.Numbers.Q4 = a
		}
	}
	return rows.Err()
}

func (s *SQLiteStore) loadResults(ctx context.Context, group *models.Group) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT quarter, team_a_score, team_b_score, team_a_digit, team_b_digit,
		 winning_square, winner_wallet, prize_amount, paid_out, paid_out_at, tx_signature
		 FROM quarter_results WHERE group_id = ? ORDER BY quarter`,
		group.ID)
	if err != nil {
		return fmt.Errorf("failed to get quarter results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r models.QuarterResult
		var winning sql.NullInt64
		if err := rows.Scan(&r.Quarter, &r.TeamAScore, &r.TeamBScore, &r.TeamADigit, &r.TeamBDigit,
			&winning, &r.WinnerWallet, &r.PrizeAmount, &r.PaidOut, &r.PaidOutAt, &r.TxSignature); err != nil {
			return fmt.Errorf("failed to scan quarter result: %w", err)
		}
		if winning.Valid {
			idx := int(winning.Int64)
			r.WinningSquareIndex = &idx
		}
		group.QuarterResults = append(group.QuarterResults, r)
	}
	return rows.Err()
}

// writeChildren inserts squares, number assignments, and quarter results for
// a group inside the given transaction.
func writeChildren(ctx context.Context, tx *sql.Tx, group *models.Group) error {
	for _, sq := range group.Squares {
		if !sq.Owned() {
			continue
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO squares (group_id, idx, owner, owner_display, purchased_at) VALUES (?, ?, ?, ?, ?)",
			group.ID, sq.Index, sq.Owner, sq.OwnerDisplay, sq.PurchasedAt)
		if err != nil {
			return fmt.Errorf("failed to insert square: %w", err)
		}
	}

	slots := map[string]*models.NumberAssignment{
		"current": group.Numbers.Current,
		"q1":      group.Numbers.Q1,
		"q2":      group.Numbers.Q2,
		"q3":      group.Numbers.Q3,
		"q4":      group.Numbers.Q4,
	}
	for _, slot := range assignmentSlots {
		a := slots[slot]
		if a == nil {
			continue
		}
		rowJSON, err := json.Marshal(a.RowNumbers)
		if err != nil {
			return fmt.Errorf("failed to encode row numbers: %w", err)
		}
		colJSON, err := json.Marshal(a.ColNumbers)
		if err != nil {
			return fmt.Errorf("failed to encode col numbers: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO number_assignments (group_id, slot, row_numbers, col_numbers, assigned_at) VALUES (?, ?, ?, ?, ?)",
			group.ID, slot, string(rowJSON), string(colJSON), a.AssignedAt)
		if err != nil {
			return fmt.Errorf("failed to insert number assignment: %w", err)
		}
	}

	for _, r := range group.QuarterResults {
		var winning interface{}
		if r.WinningSquareIndex != nil {
			winning = *r.WinningSquareIndex
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO quarter_results (group_id, quarter, team_a_score, team_b_score,
			 team_a_digit, team_b_digit, winning_square, winner_wallet, prize_amount,
			 paid_out, paid_out_at, tx_signature)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			group.ID, r.Quarter, r.TeamAScore, r.TeamBScore, r.TeamADigit, r.TeamBDigit,
			winning, r.WinnerWallet, r.PrizeAmount, r.PaidOut, r.PaidOutAt, r.TxSignature)
		if err != nil {
			return fmt.Errorf("failed to insert quarter result: %w", err)
		}
	}
	return nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
