package geo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLocator struct {
	locateFunc func(req Request) (Record, error)
	calls      int
}

func (m *mockLocator) Locate(_ context.Context, req Request) (Record, error) {
	m.calls++
	return m.locateFunc(req)
}

func successRecord(ip string) *testRecord {
	return &testRecord{Status: strPtr("success"), Country: strPtr("Germany"), Query: ip}
}

func TestCachedLocatorHit(t *testing.T) {
	next := &mockLocator{locateFunc: func(req Request) (Record, error) {
		return successRecord(req.Subject), nil
	}}
	c, err := NewCachedLocator(next, 16)
	require.NoError(t, err)

	_, cached, err := c.LocateCached(context.Background(), Request{Subject: "1.2.3.4"})
	require.NoError(t, err)
	assert.False(t, cached)

	rec, cached, err := c.LocateCached(context.Background(), Request{Subject: "1.2.3.4"})
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, "1.2.3.4", rec.(*testRecord).Query)
	assert.Equal(t, 1, next.calls)
}

func TestCachedLocatorKeyIncludesModifiers(t *testing.T) {
	next := &mockLocator{locateFunc: func(req Request) (Record, error) {
		return successRecord(req.Subject), nil
	}}
	c, err := NewCachedLocator(next, 16)
	require.NoError(t, err)

	_, err = c.Locate(context.Background(), Request{Subject: "1.2.3.4", Lang: "en"})
	require.NoError(t, err)
	_, err = c.Locate(context.Background(), Request{Subject: "1.2.3.4", Lang: "de"})
	require.NoError(t, err)
	_, err = c.Locate(context.Background(), Request{Subject: "1.2.3.4", Lang: "de", Fields: []string{"country"}})
	require.NoError(t, err)

	assert.Equal(t, 3, next.calls)
}

func TestCachedLocatorSkipsVendorFailures(t *testing.T) {
	next := &mockLocator{locateFunc: func(req Request) (Record, error) {
		return &testRecord{Status: strPtr("fail"), Query: req.Subject}, nil
	}}
	c, err := NewCachedLocator(next, 16)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		rec, cached, err := c.LocateCached(context.Background(), Request{Subject: "1.2.3.4"})
		require.NoError(t, err)
		assert.False(t, cached)
		assert.False(t, rec.Success())
	}
	assert.Equal(t, 2, next.calls)
}

func TestCachedLocatorSkipsSelfLookups(t *testing.T) {
	next := &mockLocator{locateFunc: func(Request) (Record, error) {
		return successRecord("9.9.9.9"), nil
	}}
	c, err := NewCachedLocator(next, 16)
	require.NoError(t, err)

	_, _ = c.Locate(context.Background(), Request{})
	_, _ = c.Locate(context.Background(), Request{})

	assert.Equal(t, 2, next.calls)
	assert.Equal(t, 0, c.Cache.Len())
}

func TestCachedLocatorErrorNotCached(t *testing.T) {
	next := &mockLocator{locateFunc: func(Request) (Record, error) {
		return nil, &TransportError{URL: "http://vendor.test", Err: errors.New("boom")}
	}}
	c, err := NewCachedLocator(next, 16)
	require.NoError(t, err)

	rec, cached, err := c.LocateCached(context.Background(), Request{Subject: "1.2.3.4"})

	assert.Nil(t, rec)
	assert.False(t, cached)
	assert.True(t, IsTransportError(err))
	_, found := c.Cache.Get(cacheKey(Request{Subject: "1.2.3.4"}))
	assert.False(t, found)
}

func TestCachedLocatorCachesSelectionWithoutStatus(t *testing.T) {
	next := &mockLocator{locateFunc: func(req Request) (Record, error) {
		return &testRecord{Country: strPtr("United States"), Query: req.Subject}, nil
	}}
	c, err := NewCachedLocator(next, 16)
	require.NoError(t, err)
	req := Request{Subject: "8.8.8.8", Fields: []string{"country", "query"}}

	rec, cached, err := c.LocateCached(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.False(t, rec.Success())
	assert.False(t, Failed(rec))

	_, cached, err = c.LocateCached(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, 1, next.calls)
}

func TestCachedLocatorKeysDoNotCollide(t *testing.T) {
	next := &mockLocator{locateFunc: func(req Request) (Record, error) {
		return successRecord(req.Subject), nil
	}}
	c, err := NewCachedLocator(next, 16)
	require.NoError(t, err)

	_, err = c.Locate(context.Background(), Request{Subject: "1.2.3.4", Lang: "en|status"})
	require.NoError(t, err)
	_, err = c.Locate(context.Background(), Request{Subject: "1.2.3.4", Lang: "en", Fields: []string{"status|"}})
	require.NoError(t, err)

	assert.Equal(t, 2, next.calls)
	assert.Equal(t, 2, c.Cache.Len())
}

func TestFailed(t *testing.T) {
	assert.True(t, Failed(nil))
	assert.True(t, Failed(&testRecord{Status: strPtr("fail")}))
	assert.False(t, Failed(&testRecord{Status: strPtr("success")}))
	assert.False(t, Failed(&testRecord{Country: strPtr("Germany")}))
}

func TestNewCachedLocatorInvalidSize(t *testing.T) {
	_, err := NewCachedLocator(&mockLocator{}, 0)
	assert.Error(t, err)
}
