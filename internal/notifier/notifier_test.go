package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowAssignsMonotonicIDs(t *testing.T) {
	c := NewCenter(WithTTL(time.Minute))
	defer c.Close()

	first := c.Success("salvo")
	second := c.Error("falhou")
	third := c.Info("carregando")

	assert.Less(t, first.ID, second.ID)
	assert.Less(t, second.ID, third.ID)
}

func TestActiveReturnsInsertionOrder(t *testing.T) {
	c := NewCenter(WithTTL(time.Minute))
	defer c.Close()

	c.Success("um")
	c.Warning("dois")
	c.Error("três")

	active := c.Active()
	require.Len(t, active, 3)
	assert.Equal(t, "um", active[0].Message)
	assert.Equal(t, "dois", active[1].Message)
	assert.Equal(t, "três", active[2].Message)
	assert.Equal(t, SeveritySuccess, active[0].Severity)
	assert.Equal(t, SeverityWarning, active[1].Severity)
	assert.Equal(t, SeverityError, active[2].Severity)
}

func TestDismissIsIndependent(t *testing.T) {
	c := NewCenter(WithTTL(time.Minute))
	defer c.Close()

	a := c.Success("a")
	b := c.Success("b")
	d := c.Success("c")

	c.Dismiss(b.ID)

	active := c.Active()
	require.Len(t, active, 2)
	assert.Equal(t, a.ID, active[0].ID)
	assert.Equal(t, d.ID, active[1].ID)
}

func TestDismissUnknownIDIsNoop(t *testing.T) {
	c := NewCenter(WithTTL(time.Minute))
	defer c.Close()

	c.Success("a")
	c.Dismiss(999)

	assert.Len(t, c.Active(), 1)
}

func TestNotificationsExpireAfterTTL(t *testing.T) {
	c := NewCenter(WithTTL(10 * time.Millisecond))
	defer c.Close()

	c.Success("vai sumir")
	require.Len(t, c.Active(), 1)

	assert.Eventually(t, func() bool {
		return len(c.Active()) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestExpiryIsPerNotification(t *testing.T) {
	c := NewCenter(WithTTL(30 * time.Millisecond))
	defer c.Close()

	c.Success("cedo")
	time.Sleep(20 * time.Millisecond)
	late := c.Success("tarde")

	// The first expires while the second is still inside its own window.
	assert.Eventually(t, func() bool {
		active := c.Active()
		return len(active) == 1 && active[0].ID == late.ID
	}, time.Second, 2*time.Millisecond)
}

func TestSubscribeSeesEveryNotification(t *testing.T) {
	c := NewCenter(WithTTL(time.Minute))
	defer c.Close()

	var seen []Notification
	c.Subscribe(func(n Notification) { seen = append(seen, n) })

	c.Success("um")
	c.Error("dois")

	require.Len(t, seen, 2)
	assert.Equal(t, "um", seen[0].Message)
	assert.Equal(t, SeverityError, seen[1].Severity)
}

func TestCloseDropsFurtherShows(t *testing.T) {
	c := NewCenter(WithTTL(time.Minute))
	c.Success("antes")
	c.Close()

	n := c.Success("depois")
	assert.Zero(t, n.ID)
	assert.Empty(t, c.Active())
}
