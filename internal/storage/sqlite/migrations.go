package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database. These run on
// startup to ensure tables exist. Child tables cascade from groups so that
// deleting a group removes its squares, assignments, and results in one go.
const schema = `
CREATE TABLE IF NOT EXISTS groups (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    team1 TEXT NOT NULL,
    team2 TEXT NOT NULL,
    price_per_square REAL NOT NULL,
    currency TEXT NOT NULL,
    visibility TEXT NOT NULL,
    invite_code TEXT,
    payout_q1 REAL NOT NULL,
    payout_q2 REAL NOT NULL,
    payout_q3 REAL NOT NULL,
    payout_q4 REAL NOT NULL,
    creator_fee REAL NOT NULL,
    number_randomization TEXT NOT NULL,
    grid_size TEXT NOT NULL,
    creator TEXT NOT NULL,
    creator_name TEXT NOT NULL,
    creator_display TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    status TEXT NOT NULL,
    locked_at INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS squares (
    group_id TEXT NOT NULL,
    idx INTEGER NOT NULL,
    owner TEXT NOT NULL,
    owner_display TEXT NOT NULL,
    purchased_at INTEGER NOT NULL,
    PRIMARY KEY (group_id, idx),
    FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS number_assignments (
    group_id TEXT NOT NULL,
    slot TEXT NOT NULL,
    row_numbers TEXT NOT NULL,
    col_numbers TEXT NOT NULL,
    assigned_at INTEGER NOT NULL,
    PRIMARY KEY (group_id, slot),
    FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS quarter_results (
    group_id TEXT NOT NULL,
    quarter INTEGER NOT NULL,
    team_a_score INTEGER NOT NULL,
    team_b_score INTEGER NOT NULL,
    team_a_digit INTEGER NOT NULL,
    team_b_digit INTEGER NOT NULL,
    winning_square INTEGER,
    winner_wallet TEXT NOT NULL,
    prize_amount REAL NOT NULL,
    paid_out INTEGER NOT NULL DEFAULT 0,
    paid_out_at INTEGER NOT NULL DEFAULT 0,
    tx_signature TEXT NOT NULL,
    PRIMARY KEY (group_id, quarter),
    FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_groups_invite_code ON groups(invite_code);
CREATE INDEX IF NOT EXISTS idx_groups_visibility_status ON groups(visibility, status);
CREATE INDEX IF NOT EXISTS idx_squares_group_id ON squares(group_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
