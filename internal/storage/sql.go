package storage

const createKeystrokesTable = `CREATE TABLE IF NOT EXISTS keystrokes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	scan_code INTEGER NOT NULL,
	key_name TEXT NOT NULL,
	date DATE NOT NULL,
	count INTEGER DEFAULT 0,
	UNIQUE(scan_code, date)
)`

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA cache_size=10000",
	"PRAGMA temp_store=MEMORY",
}

const upsertKeystroke = `INSERT INTO keystrokes (scan_code, key_name, date, count)
	VALUES (?, ?, ?, 1)
	ON CONFLICT(scan_code, date) DO UPDATE SET
		count = count + 1,
		key_name = excluded.key_name`

const clearKeystrokes = `DELETE FROM keystrokes`

// the name of the most recent day wins when a code was renamed
const selectTotalsByKey = `SELECT k.scan_code,
		(SELECT n.key_name FROM keystrokes n WHERE n.scan_code = k.scan_code ORDER BY n.date DESC LIMIT 1),
		SUM(k.count) AS total_presses
	FROM keystrokes k
	GROUP BY k.scan_code
	ORDER BY k.scan_code ASC`

const selectDailyTotals = `SELECT date, SUM(count) AS daily_total
	FROM keystrokes
	WHERE date BETWEEN ? AND ?
	GROUP BY date
	ORDER BY date DESC`

// the name of the most recent day inside the window wins
const selectTopKeys = `SELECT k.scan_code,
		(SELECT n.key_name FROM keystrokes n
			WHERE n.scan_code = k.scan_code AND n.date BETWEEN ? AND ?
			ORDER BY n.date DESC LIMIT 1),
		SUM(k.count) AS total_presses
	FROM keystrokes k
	WHERE k.date BETWEEN ? AND ?
	GROUP BY k.scan_code
	ORDER BY total_presses DESC, k.scan_code ASC
	LIMIT ?`

const selectTotalCount = `SELECT COALESCE(SUM(count), 0) FROM keystrokes`

const selectTotalCountForDate = `SELECT COALESCE(SUM(count), 0) FROM keystrokes WHERE date = ?`

const selectKeyCounts = `SELECT scan_code, key_name, date, count FROM keystrokes
	ORDER BY count DESC, scan_code ASC, date ASC`

const selectKeyCountsForDate = `SELECT scan_code, key_name, date, count FROM keystrokes
	WHERE date = ?
	ORDER BY count DESC, scan_code ASC`
