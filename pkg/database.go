package msgtree

import (
	"fmt"
	"unicode/utf8"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
)

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

type CodeRow struct {
	Archive string `db:"Archive"`
	Symbol  string `db:"Symbol"`
	Code    string `db:"Code"`
}

type MessageRow struct {
	Archive      string  `db:"Archive"`
	Message      string  `db:"Message"`
	Bits         int     `db:"Bits"`
	Chars        int     `db:"Chars"`
	AvgBits      float64 `db:"AvgBits"`
	SpaceSavings float64 `db:"SpaceSavings"`
}

const (
	archiveQuery  = "SELECT Name, Shape, Bits FROM Archives WHERE Name = ?"
	codesQuery    = "SELECT Archive, Symbol, Code FROM CodeTables WHERE Archive = ?"
	deleteCodes   = "DELETE FROM CodeTables WHERE Archive = ?"
	insertCode    = "INSERT INTO CodeTables (Archive, Symbol, Code) VALUES (:Archive, :Symbol, :Code)"
	insertMessage = "REPLACE INTO DecodedMessages (Archive, Message, Bits, Chars, AvgBits, SpaceSavings) " +
		"VALUES (:Archive, :Message, :Bits, :Chars, :AvgBits, :SpaceSavings)"
)

// LoadArchiveFromDB reads the shape and bit message stored under name. An
// archive stored without a shape gets it from its saved code table.
func LoadArchiveFromDB(db *sqlx.DB, name string) (Archive, error) {
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Reading archive %s from database", name)
		logger.Info(message, "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s", archiveQuery)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(archiveQuery, name)
	if err != nil {
		return Archive{}, fmt.Errorf("error querying database: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return Archive{}, fmt.Errorf("error querying database: %w", err)
		}
		return Archive{}, fmt.Errorf("archive %q not found in database", name)
	}
	archive := Archive{}
	if err := rows.StructScan(&archive); err != nil {
		return Archive{}, fmt.Errorf("error scanning DB row: %w", err)
	}
	if archive.Shape != "" {
		return archive, nil
	}

	table, err := LoadCodeTableFromDB(db, name)
	if err != nil {
		return Archive{}, err
	}
	root, err := TreeFromCodeTable(table)
	if err != nil {
		return Archive{}, fmt.Errorf("error rebuilding tree of %q from its codes: %w", name, err)
	}
	archive.Shape = root.PreOrder()
	return archive, nil
}

// LoadCodeTableFromDB reads the codes saved for an archive. Rows come back in
// no particular order.
func LoadCodeTableFromDB(db *sqlx.DB, name string) (CodeTable, error) {
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Reading code table of %s from database", name)
		logger.Info(message, "database")
	}
	rows, err := db.Queryx(codesQuery, name)
	if err != nil {
		return nil, fmt.Errorf("error querying database: %w", err)
	}
	defer rows.Close()

	table := CodeTable{}
	for rows.Next() {
		result := CodeRow{}
		if err := rows.StructScan(&result); err != nil {
			return nil, fmt.Errorf("error scanning DB row: %w", err)
		}
		symbol, size := utf8.DecodeRuneInString(result.Symbol)
		if size == 0 || size != len(result.Symbol) {
			return nil, fmt.Errorf("invalid symbol %q in code table of %q", result.Symbol, name)
		}
		table = append(table, CodeEntry{Symbol: symbol, Code: result.Code})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading code table: %w", err)
	}
	return table, nil
}

// SaveResultToDB replaces the code table and decoded message of an archive.
func SaveResultToDB(db *sqlx.DB, result Result) error {
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Saving %s to database", result.Name)
		logger.Info(message, "database")
	}

	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(deleteCodes, result.Name); err != nil {
		return fmt.Errorf("error deleting old codes: %w", err)
	}
	for _, row := range codeRows(result) {
		if _, err := tx.NamedExec(insertCode, row); err != nil {
			return fmt.Errorf("error inserting code for %q: %w", row.Symbol, err)
		}
	}
	if _, err := tx.NamedExec(insertMessage, messageRow(result)); err != nil {
		return fmt.Errorf("error inserting decoded message: %w", err)
	}
	return tx.Commit()
}

func codeRows(result Result) []CodeRow {
	rows := make([]CodeRow, len(result.Codes))
	for i, entry := range result.Codes {
		rows[i] = CodeRow{
			Archive: result.Name,
			Symbol:  string(entry.Symbol),
			Code:    entry.Code,
		}
	}
	return rows
}

func messageRow(result Result) MessageRow {
	return MessageRow{
		Archive:      result.Name,
		Message:      result.Message,
		Bits:         result.Stats.Bits,
		Chars:        result.Stats.Chars,
		AvgBits:      result.Stats.AvgBitsPerChar,
		SpaceSavings: result.Stats.SpaceSavings,
	}
}
