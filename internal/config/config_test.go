package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("expected default database port 5432, got %d", cfg.Database.Port)
	}
	if cfg.Notification.DelaySeconds != 15 {
		t.Errorf("expected default notification delay 15s, got %d", cfg.Notification.DelaySeconds)
	}
	if cfg.Delivery.PickupMinutes != 10 || cfg.Delivery.TransitMinutes != 20 {
		t.Errorf("expected delivery policy 10/20, got %d/%d",
			cfg.Delivery.PickupMinutes, cfg.Delivery.TransitMinutes)
	}
	if cfg.NotificationsEnabled() {
		t.Error("expected notifications to be disabled with no hub credentials")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_PORT", "6543")
	t.Setenv("NOTIFICATION_HUB_CONNECTION_STRING", "Endpoint=sb://x.servicebus.windows.net/;SharedAccessKeyName=k;SharedAccessKey=s")
	t.Setenv("NOTIFICATION_HUB_NAME", "orders-hub")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Database.Port != 6543 {
		t.Errorf("expected database port 6543, got %d", cfg.Database.Port)
	}
	if !cfg.NotificationsEnabled() {
		t.Error("expected notifications to be enabled")
	}
}

func TestLoad_InvalidInt(t *testing.T) {
	t.Setenv("RABBITMQ_PORT", "not-a-port")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid RABBITMQ_PORT")
	}
}
