package notification

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	userID := uuid.New()

	t.Run("creates unread notification", func(t *testing.T) {
		n, err := New(userID, KindStockCritical, "Stock crítico", "Quedan 3 unidades")
		require.NoError(t, err)

		assert.Equal(t, userID, n.UserID)
		assert.False(t, n.Read)
		assert.False(t, n.Archived)
	})

	t.Run("rejects missing user, kind or title", func(t *testing.T) {
		_, err := New(uuid.Nil, KindOrderStatus, "t", "b")
		assert.Error(t, err)
		_, err = New(userID, Kind("spam"), "t", "b")
		assert.Error(t, err)
		_, err = New(userID, KindOrderStatus, "  ", "b")
		assert.Error(t, err)
	})
}

func TestNotification_Flags(t *testing.T) {
	n, err := New(uuid.New(), KindOrderStatus, "Pedido despachado", "")
	require.NoError(t, err)

	n.MarkRead()
	assert.True(t, n.Read)

	n, err = New(uuid.New(), KindOrderStatus, "Pedido recibido", "")
	require.NoError(t, err)

	n.Archive()
	assert.True(t, n.Archived)
	assert.True(t, n.Read, "archiving implies read")
}

func TestNotification_Attachments(t *testing.T) {
	n, err := New(uuid.New(), KindStockMaximum, "Sobre stock", "")
	require.NoError(t, err)

	productID := uuid.New()
	orderID := uuid.New()
	n.AttachProduct(productID)
	n.AttachOrder(orderID)

	assert.Equal(t, productID, *n.ProductID)
	assert.Equal(t, orderID, *n.OrderID)
}
