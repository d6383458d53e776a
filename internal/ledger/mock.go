package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/lucasfauno/printdesk/internal/common"
)

// MockClient is an in-memory Client for testing. It emulates the two sheets
// as plain string grids, including the header rows, so tests exercise the
// same positional arithmetic the real spreadsheet requires.
type MockClient struct {
	// Per-operation error injection. When set, the operation fails without
	// touching the sheet.
	ListRollsErr     error
	AppendRollErr    error
	FindRowErr       error
	ReadCellErr      error
	WriteCellErr     error
	AppendHistoryErr error
	ListHistoryErr   error
	DeleteHistoryErr error

	// InventoryRows and HistoryRows include the header row, like the sheet.
	InventoryRows [][]string
	HistoryRows   [][]string

	WriteCellCalls []WriteCellCall

	mu sync.Mutex
}

// WriteCellCall records one WriteCell invocation.
type WriteCellCall struct {
	Value any
	Row   int64
	Col   int64
}

// NewMockClient creates a mock ledger with empty sheets and the standard
// header rows.
func NewMockClient() *MockClient {
	return &MockClient{
		InventoryRows: [][]string{
			{"ID", "Fecha", "Marca", "Tipo", "Color", "Acabado", "Peso_Inicial", "Peso_Actual", "Precio_Rollo"},
		},
		HistoryRows: [][]string{
			{"Fecha", "Resp", "Cliente", "Modelo", "Tipo", "Material", "Color", "Peso", "Tiempo", "Cant", "Diseño", "Total", "Unitario"},
		},
	}
}

// SeedRoll appends an inventory row directly, bypassing AppendRoll.
func (m *MockClient) SeedRoll(id, date, brand, materialType, color, finish, initial, remaining, price string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InventoryRows = append(m.InventoryRows,
		[]string{id, date, brand, materialType, color, finish, initial, remaining, price})
}

// ListRolls implements Client.
func (m *MockClient) ListRolls(_ context.Context) ([]map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListRollsErr != nil {
		return nil, m.ListRollsErr
	}

	if len(m.InventoryRows) == 0 {
		return nil, nil
	}

	header := m.InventoryRows[0]
	records := make([]map[string]string, 0, len(m.InventoryRows)-1)
	for _, row := range m.InventoryRows[1:] {
		record := make(map[string]string, len(header))
		for i, key := range header {
			if i < len(row) {
				record[key] = row[i]
			}
		}
		records = append(records, record)
	}

	return records, nil
}

// AppendRoll implements Client.
func (m *MockClient) AppendRoll(_ context.Context, fields []any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.AppendRollErr != nil {
		return m.AppendRollErr
	}

	m.InventoryRows = append(m.InventoryRows, stringify(fields))
	return nil
}

// FindRowByID implements Client.
func (m *MockClient) FindRowByID(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FindRowErr != nil {
		return 0, m.FindRowErr
	}

	for i, row := range m.InventoryRows {
		if len(row) > 0 && row[0] == id {
			return int64(i + 1), nil
		}
	}

	return 0, fmt.Errorf("%w: id %s", common.ErrRollNotFound, id)
}

// ReadCell implements Client.
func (m *MockClient) ReadCell(_ context.Context, row, col int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ReadCellErr != nil {
		return "", m.ReadCellErr
	}

	if row < 1 || row > int64(len(m.InventoryRows)) {
		return "", fmt.Errorf("%w: row %d out of range", common.ErrLedgerInconsistent, row)
	}
	cells := m.InventoryRows[row-1]
	if col < 1 || col > int64(len(cells)) {
		return "", nil
	}
	return cells[col-1], nil
}

// WriteCell implements Client.
func (m *MockClient) WriteCell(_ context.Context, row, col int64, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.WriteCellErr != nil {
		return m.WriteCellErr
	}

	if row < 1 || row > int64(len(m.InventoryRows)) {
		return fmt.Errorf("%w: row %d out of range", common.ErrLedgerInconsistent, row)
	}
	cells := m.InventoryRows[row-1]
	if col < 1 || col > int64(len(cells)) {
		return fmt.Errorf("%w: column %d out of range", common.ErrLedgerInconsistent, col)
	}

	cells[col-1] = fmt.Sprint(value)
	m.WriteCellCalls = append(m.WriteCellCalls, WriteCellCall{Row: row, Col: col, Value: value})
	return nil
}

// AppendHistory implements Client.
func (m *MockClient) AppendHistory(_ context.Context, fields []any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.AppendHistoryErr != nil {
		return m.AppendHistoryErr
	}

	m.HistoryRows = append(m.HistoryRows, stringify(fields))
	return nil
}

// ListHistory implements Client.
func (m *MockClient) ListHistory(_ context.Context) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListHistoryErr != nil {
		return nil, m.ListHistoryErr
	}

	rows := make([][]string, len(m.HistoryRows))
	for i, row := range m.HistoryRows {
		rows[i] = append([]string(nil), row...)
	}
	return rows, nil
}

// DeleteHistoryRow implements Client.
func (m *MockClient) DeleteHistoryRow(_ context.Context, row int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DeleteHistoryErr != nil {
		return m.DeleteHistoryErr
	}

	if row < 1 || row > int64(len(m.HistoryRows)) {
		return fmt.Errorf("%w: row %d out of range", common.ErrLedgerInconsistent, row)
	}

	m.HistoryRows = append(m.HistoryRows[:row-1], m.HistoryRows[row:]...)
	return nil
}

func stringify(fields []any) []string {
	row := make([]string, len(fields))
	for i, field := range fields {
		row[i] = fmt.Sprint(field)
	}
	return row
}
