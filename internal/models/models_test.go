package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWarehouseSerializesAsCode(t *testing.T) {
	raw, err := json.Marshal(map[Warehouse]int{WarehouseTayPhat: 5, WarehouseTNC: 2})
	require.NoError(t, err)
	require.JSONEq(t, `{"TAY_PHAT":5,"TNC":2}`, string(raw))

	raw, err = json.Marshal(WarehouseTayPhat)
	require.NoError(t, err)
	require.Equal(t, `"TAY_PHAT"`, string(raw))
}

func TestWarehouseAcceptsCodeOrLabel(t *testing.T) {
	var w Warehouse
	require.NoError(t, json.Unmarshal([]byte(`"Giải pháp Tây Phát"`), &w))
	require.Equal(t, WarehouseTayPhat, w)

	var stock map[Warehouse]int
	require.NoError(t, json.Unmarshal([]byte(`{"TNC":3}`), &stock))
	require.Equal(t, 3, stock[WarehouseTNC])
}

func TestWarehouseLabel(t *testing.T) {
	require.Equal(t, "Giải pháp Tây Phát", WarehouseTayPhat.Label())
	require.Equal(t, "TNC", WarehouseTNC.Label())
}
