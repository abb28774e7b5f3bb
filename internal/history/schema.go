package history

const schemaSQL = `
CREATE TABLE IF NOT EXISTS records (
    id                    TEXT PRIMARY KEY,
    plan                  REAL NOT NULL,
    fact                  REAL NOT NULL,
    percentage            REAL NOT NULL,
    additional_percentage REAL NOT NULL DEFAULT 0,
    final_percentage      REAL,
    score                 INTEGER NOT NULL,
    display_date          TEXT NOT NULL,
    created_at            TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS kv (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_records_created ON records(created_at);
`
