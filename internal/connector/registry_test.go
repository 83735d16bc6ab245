package connector

import (
	"context"
	"testing"

	"github.com/silvermoss/loupe/internal/model"
)

type fakeConnector struct{}

func (fakeConnector) Stream(context.Context, Config) (<-chan model.RawLog, error) { return nil, nil }
func (fakeConnector) Query(context.Context, Config, QueryParams) ([]model.RawLog, error) {
	return nil, nil
}

func TestRegisterAndGet(t *testing.T) {
	Register("fake", func() Connector { return fakeConnector{} })

	ctor, err := Get("fake")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, ok := ctor().(fakeConnector); !ok {
		t.Error("wrong connector returned")
	}
}

func TestGetUnknownProvider(t *testing.T) {
	if _, err := Get("no-such-provider"); err == nil {
		t.Fatal("expected error")
	}
}

func TestProvidersSorted(t *testing.T) {
	Register("zzz", func() Connector { return fakeConnector{} })
	Register("aaa", func() Connector { return fakeConnector{} })

	names := Providers()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("providers not sorted: %v", names)
		}
	}
}
