package lots

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateNumber produce un número de lote único para un artículo:
// L-<fecha>-<token del artículo>-<sufijo aleatorio>. La unicidad real la
// garantiza el índice único de lot_number; esto solo evita colisiones en la práctica.
func GenerateNumber(itemID string, t time.Time) string {
	token := strings.ToUpper(strings.ReplaceAll(itemID, "-", ""))
	if len(token) > 6 {
		token = token[:6]
	}
	suffix := strings.ToUpper(uuid.NewString()[:4])
	return fmt.Sprintf("L-%s-%s-%s", t.Format("20060102150405"), token, suffix)
}
