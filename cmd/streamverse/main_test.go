package main

import (
	"testing"

	"github.com/mmcdole/streamverse/internal/domain"
	"github.com/mmcdole/streamverse/internal/service"
	"github.com/mmcdole/streamverse/internal/store"
)

func TestStoreSetupKeys_ReplacesKeySavedInApp(t *testing.T) {
	state := store.NewMemoryStore()

	// Key saved (and later rejected) from the key modal
	inApp := service.NewCredentialService(state, nil, nil)
	if _, err := inApp.Save(domain.ProviderCatalog, "rejected-key"); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	// Next launch: setup wrote a fresh key to the config file
	creds := service.NewCredentialService(state, map[domain.Provider]string{
		domain.ProviderCatalog: "fresh-setup-key",
	}, nil)
	err := storeSetupKeys(creds, map[domain.Provider]string{
		domain.ProviderCatalog:   "fresh-setup-key",
		domain.ProviderAssistant: "",
	})
	if err != nil {
		t.Fatalf("storeSetupKeys() failed: %v", err)
	}

	if got := creds.Get(domain.ProviderCatalog); got != "fresh-setup-key" {
		t.Errorf("catalog key = %q, want fresh-setup-key", got)
	}
	if got := creds.Get(domain.ProviderAssistant); got != "" {
		t.Errorf("skipped assistant key = %q, want empty", got)
	}
}

func TestForgetStoredKeys_FallsBackToConfig(t *testing.T) {
	state := store.NewMemoryStore()
	creds := service.NewCredentialService(state, map[domain.Provider]string{
		domain.ProviderCatalog: "config-key",
	}, nil)
	creds.Save(domain.ProviderCatalog, "saved-key")
	creds.Save(domain.ProviderAssistant, "saved-gemini")

	if err := forgetStoredKeys(creds); err != nil {
		t.Fatalf("forgetStoredKeys() failed: %v", err)
	}

	if got := creds.Get(domain.ProviderCatalog); got != "config-key" {
		t.Errorf("catalog key = %q, want config-key", got)
	}
	if got := creds.Get(domain.ProviderAssistant); got != "" {
		t.Errorf("assistant key = %q, want empty", got)
	}
}
