package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// ExpenseCategory classifies outflows in the cash-flow tracker.
type ExpenseCategory int

const (
	ExpenseCategoryInventario ExpenseCategory = 0
	ExpenseCategoryAlquiler   ExpenseCategory = 1
	ExpenseCategoryServicios  ExpenseCategory = 2
	ExpenseCategorySalarios   ExpenseCategory = 3
	ExpenseCategoryMarketing  ExpenseCategory = 4
	ExpenseCategoryOtros      ExpenseCategory = 5
)

var expenseCategoryNames = [...]string{
	"Inventario", "Alquiler", "Servicios", "Salarios", "Marketing", "Otros",
}

func (c ExpenseCategory) String() string {
	if int(c) < 0 || int(c) >= len(expenseCategoryNames) {
		return "Otros"
	}
	return expenseCategoryNames[c]
}

// ParseExpenseCategory parses a category name, case-insensitively
func ParseExpenseCategory(s string) (ExpenseCategory, error) {
	for i, name := range expenseCategoryNames {
		if strings.EqualFold(name, s) {
			return ExpenseCategory(i), nil
		}
	}
	return ExpenseCategoryOtros, fmt.Errorf("unknown expense category: %s", s)
}

func (c ExpenseCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ExpenseCategory) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*c = ExpenseCategory(i)
		return nil
	}
	for i, name := range expenseCategoryNames {
		if name == str {
			*c = ExpenseCategory(i)
			return nil
		}
	}
	*c = ExpenseCategoryOtros
	return nil
}

func (c ExpenseCategory) Value() (driver.Value, error) {
	return int64(c), nil
}

func (c *ExpenseCategory) Scan(value interface{}) error {
	if value == nil {
		*c = ExpenseCategoryOtros
		return nil
	}
	switch v := value.(type) {
	case int64:
		*c = ExpenseCategory(v)
	case int:
		*c = ExpenseCategory(v)
	}
	return nil
}
