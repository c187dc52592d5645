package ledger

// Amounts are stored as decimal strings, not REAL: the closing-balance
// chain must hold under exact arithmetic, and sums are re-accumulated in
// decimal on the Go side.
const Schema = `
CREATE TABLE IF NOT EXISTS daily_balances (
	currency TEXT NOT NULL,
	day TEXT NOT NULL,
	opening_balance TEXT NOT NULL,
	purchases TEXT NOT NULL,
	exchange_buy TEXT NOT NULL,
	exchange_sell TEXT NOT NULL,
	sales TEXT NOT NULL,
	deposits TEXT NOT NULL,
	closing_balance TEXT NOT NULL,
	PRIMARY KEY (currency, day)
);

CREATE TABLE IF NOT EXISTS receipts (
	id TEXT PRIMARY KEY,
	serial_number TEXT NOT NULL UNIQUE,
	day TEXT NOT NULL,
	customer_name TEXT NOT NULL,
	nic_passport TEXT NOT NULL,
	source TEXT NOT NULL,
	remarks TEXT NOT NULL DEFAULT '',
	recorded_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	currency TEXT NOT NULL,
	day TEXT NOT NULL,
	amount TEXT NOT NULL,
	receipt_id TEXT NOT NULL DEFAULT '',
	recorded_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_currency_day ON transactions(currency, day, kind);
`
