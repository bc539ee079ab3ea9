package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// SaleStatus represents the lifecycle state of a sale. The only allowed
// transition is Pendiente → Completado; sales are otherwise immutable.
type SaleStatus int

const (
	SaleStatusPendiente  SaleStatus = 0
	SaleStatusCompletado SaleStatus = 1
)

func (s SaleStatus) String() string {
	names := [...]string{"Pendiente", "Completado"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Pendiente"
	}
	return names[s]
}

// ParseSaleStatus parses a status name, case-insensitively
func ParseSaleStatus(s string) (SaleStatus, error) {
	switch strings.ToLower(s) {
	case "pendiente":
		return SaleStatusPendiente, nil
	case "completado":
		return SaleStatusCompletado, nil
	}
	return SaleStatusPendiente, fmt.Errorf("unknown sale status: %s", s)
}

func (s SaleStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SaleStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SaleStatus(i)
		return nil
	}
	switch str {
	case "Pendiente":
		*s = SaleStatusPendiente
	case "Completado":
		*s = SaleStatusCompletado
	}
	return nil
}

func (s SaleStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SaleStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SaleStatusPendiente
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SaleStatus(v)
	case int:
		*s = SaleStatus(v)
	}
	return nil
}
