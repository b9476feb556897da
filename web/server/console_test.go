package server

import (
	"testing"
	"time"
)

func TestWebLogger_BasicLogging(t *testing.T) {
	// Create a channel to receive console messages
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-123", messageChan)

	testMessage := "Test log message"
	logger.Printf("%s\n", testMessage)

	select {
	case msg := <-messageChan:
		expectedMessage := testMessage + "\n"
		if msg.Message != expectedMessage {
			t.Errorf("Expected message '%s', got '%s'", expectedMessage, msg.Message)
		}
		if msg.Level != "info" {
			t.Errorf("Expected level 'info', got '%s'", msg.Level)
		}
		if time.Since(msg.Timestamp) > time.Second {
			t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for console message")
	}
}

func TestWebLogger_Levels(t *testing.T) {
	tests := []struct {
		message string
		level   string
	}{
		{"Loaded scene: 3 spheres\n", "info"},
		{"Warning: overlapping primitives\n", "warning"},
		{"Error: mesh not found\n", "error"},
	}

	messageChan := make(chan ConsoleMessage, len(tests))
	logger := NewWebLogger("test-render-levels", messageChan)
	for _, tt := range tests {
		logger.Printf("%s", tt.message)
	}

	received := drainConsole(messageChan)
	if len(received) != len(tests) {
		t.Fatalf("Expected %d messages, got %d", len(tests), len(received))
	}
	for i, tt := range tests {
		if received[i].Level != tt.level {
			t.Errorf("Message %q: expected level %s, got %s", tt.message, tt.level, received[i].Level)
		}
	}
}

func TestWebLogger_ChannelFull(t *testing.T) {
	// Create a small channel that will fill up
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("test-render-789", messageChan)

	logger.Printf("Message 1\n")

	// Send more messages - these should not block even though channel is full
	logger.Printf("Message 2\n")
	logger.Printf("Message 3\n")

	received := drainConsole(messageChan)
	if len(received) != 1 || received[0].Message != "Message 1\n" {
		t.Errorf("Expected only the first message, got %v", received)
	}
}

func TestWebLogger_NilChannel(t *testing.T) {
	// Test logger with nil channel (should not panic)
	logger := NewWebLogger("test-render-nil", nil)
	logger.Printf("Test message with nil channel\n")
}

func TestWebLogger_FormattedMessages(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-format", messageChan)

	logger.Printf("Loaded mesh %s: %d triangles\n", "cube.obj", 12)

	select {
	case msg := <-messageChan:
		expected := "Loaded mesh cube.obj: 12 triangles\n"
		if msg.Message != expected {
			t.Errorf("Expected formatted message '%s', got '%s'", expected, msg.Message)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for formatted message")
	}
}

func TestDrainConsole_Empty(t *testing.T) {
	if messages := drainConsole(make(chan ConsoleMessage, 4)); len(messages) != 0 {
		t.Errorf("Expected no messages, got %v", messages)
	}
}
