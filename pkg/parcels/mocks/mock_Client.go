// Package mocks provides test doubles for the parcels client.
package mocks

import (
	"context"

	model "github.com/sells-group/parcel-cli/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// Query provides a mock function with given fields: ctx, bbox
func (_m *MockClient) Query(ctx context.Context, bbox model.BoundingBox) ([]byte, error) {
	ret := _m.Called(ctx, bbox)

	if len(ret) == 0 {
		panic("no return value specified for Query")
	}

	var r0 []byte
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, model.BoundingBox) ([]byte, error)); ok {
		return rf(ctx, bbox)
	}
	if rf, ok := ret.Get(0).(func(context.Context, model.BoundingBox) []byte); ok {
		r0 = rf(ctx, bbox)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]byte)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, model.BoundingBox) error); ok {
		r1 = rf(ctx, bbox)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockClient creates a new instance of MockClient.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	mock := &MockClient{}
	mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
