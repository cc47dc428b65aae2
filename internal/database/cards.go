package database

import (
	"database/sql"
	"fmt"

	"hsouza/julius/internal/models"

	"github.com/shopspring/decimal"
)

// CreateCard inserts a new card
func (db *DB) CreateCard(card *models.Card) error {
	result, err := db.Exec(`
		INSERT INTO cards (name, last_digits, used_limit, available_limit, total_limit)
		VALUES (?, ?, ?, ?, ?)`,
		card.Name, card.LastDigits,
		decimalToNull(card.UsedLimit), decimalToNull(card.AvailableLimit), decimalToNull(card.TotalLimit),
	)
	if err != nil {
		return fmt.Errorf("insert card: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get card id: %w", err)
	}
	card.ID = id
	return nil
}

// GetCardByName finds a card by its name, returning nil when absent
func (db *DB) GetCardByName(name string) (*models.Card, error) {
	row := db.QueryRow(`
		SELECT id, name, last_digits, used_limit, available_limit, total_limit
		FROM cards WHERE name = ?`, name)

	card, err := scanCard(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query card: %w", err)
	}
	return card, nil
}

// GetOrCreateCard looks a card up by name, creating it if missing
func (db *DB) GetOrCreateCard(name string) (*models.Card, error) {
	card, err := db.GetCardByName(name)
	if err != nil {
		return nil, err
	}
	if card != nil {
		return card, nil
	}

	card = &models.Card{Name: name}
	if err := db.CreateCard(card); err != nil {
		return nil, err
	}
	return card, nil
}

// ListCards returns all cards ordered by name
func (db *DB) ListCards() ([]models.Card, error) {
	rows, err := db.Query(`
		SELECT id, name, last_digits, used_limit, available_limit, total_limit
		FROM cards ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, *card)
	}
	return cards, rows.Err()
}

// UpdateCardLimits refreshes the stored limits from the latest statement
func (db *DB) UpdateCardLimits(cardID int64, used, available, total *decimal.Decimal) error {
	_, err := db.Exec(`
		UPDATE cards SET used_limit = ?, available_limit = ?, total_limit = ?
		WHERE id = ?`,
		decimalToNull(used), decimalToNull(available), decimalToNull(total), cardID,
	)
	if err != nil {
		return fmt.Errorf("update card limits: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*models.Card, error) {
	var card models.Card
	var used, available, total sql.NullString

	err := row.Scan(&card.ID, &card.Name, &card.LastDigits, &used, &available, &total)
	if err != nil {
		return nil, err
	}

	card.UsedLimit, err = nullToDecimal(used)
	if err != nil {
		return nil, err
	}
	card.AvailableLimit, err = nullToDecimal(available)
	if err != nil {
		return nil, err
	}
	card.TotalLimit, err = nullToDecimal(total)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func decimalToNull(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func nullToDecimal(s sql.NullString) (*decimal.Decimal, error) {
	if !s.Valid {
		return nil, nil
	}
	d, err := decimal.NewFromString(s.String)
	if err != nil {
		return nil, fmt.Errorf("parse stored amount %q: %w", s.String, err)
	}
	return &d, nil
}
