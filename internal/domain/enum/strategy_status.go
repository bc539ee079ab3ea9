package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StrategyStatus tracks a marketing strategy through the wizard lifecycle.
type StrategyStatus int

const (
	StrategyStatusBorrador   StrategyStatus = 0
	StrategyStatusActiva     StrategyStatus = 1
	StrategyStatusCompletada StrategyStatus = 2
)

func (s StrategyStatus) String() string {
	names := [...]string{"Borrador", "Activa", "Completada"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Borrador"
	}
	return names[s]
}

// ParseStrategyStatus parses a status name, case-insensitively
func ParseStrategyStatus(s string) (StrategyStatus, error) {
	switch strings.ToLower(s) {
	case "borrador":
		return StrategyStatusBorrador, nil
	case "activa":
		return StrategyStatusActiva, nil
	case "completada":
		return StrategyStatusCompletada, nil
	}
	return StrategyStatusBorrador, fmt.Errorf("unknown strategy status: %s", s)
}

func (s StrategyStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *StrategyStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = StrategyStatus(i)
		return nil
	}
	switch str {
	case "Borrador":
		*s = StrategyStatusBorrador
	case "Activa":
		*s = StrategyStatusActiva
	case "Completada":
		*s = StrategyStatusCompletada
	}
	return nil
}

func (s StrategyStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *StrategyStatus) Scan(value interface{}) error {
	if value == nil {
		*s = StrategyStatusBorrador
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = StrategyStatus(v)
	case int:
		*s = StrategyStatus(v)
	}
	return nil
}
