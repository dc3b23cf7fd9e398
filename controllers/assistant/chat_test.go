package assistantControllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glowcare-gm/glowcare-api/models"
)

func chatHistory(lines ...string) []ChatMessage {
	history := make([]ChatMessage, 0, len(lines))
	for i, line := range lines {
		role := "user"
		if i%2 == 1 {
			role = "bot"
		}
		history = append(history, ChatMessage{Role: role, Content: line})
	}
	return history
}

func TestCustomerChatRestrictedToCatalog(t *testing.T) {
	db := newTestDB(t)
	db.Create(&models.Product{ID: "p1", Name: "Aloe Cleanser", Price: 12, Category: "Cleansers", ImageURL: "x", Stock: 4})

	client := fakeModel(t, func(req *GenerateRequest) *GenerateResponse {
		if req.SystemInstruction == nil || !strings.Contains(req.SystemInstruction.Parts[0].Text, "Aloe Cleanser") {
			t.Error("catalog not present in system instruction")
		}
		if len(req.Tools) != 0 {
			t.Error("customer chat must not expose admin tools")
		}
		return textResponse(`{"response":"Try the Aloe Cleanser."}`)
	})

	reply, err := CustomerChat(context.Background(), db, client, ChatRequest{History: chatHistory("What cleanser do you have?")})
	if err != nil {
		t.Fatalf("CustomerChat: %v", err)
	}
	if reply != "Try the Aloe Cleanser." {
		t.Errorf("reply = %q", reply)
	}
}

func TestCustomerChatIncludesProductContext(t *testing.T) {
	db := newTestDB(t)

	client := fakeModel(t, func(req *GenerateRequest) *GenerateResponse {
		if !strings.Contains(req.SystemInstruction.Parts[0].Text, "Vitamin C Serum") {
			t.Error("product context missing from system instruction")
		}
		return textResponse(`{"response":"It brightens skin tone."}`)
	})

	req := ChatRequest{
		History:        chatHistory("What does this do?"),
		ProductContext: &ProductContext{Name: "Vitamin C Serum", Description: "Brightening serum"},
	}
	if _, err := CustomerChat(context.Background(), db, client, req); err != nil {
		t.Fatalf("CustomerChat: %v", err)
	}
}

func TestAdminChatRunsToolLoop(t *testing.T) {
	db := newTestDB(t)
	db.Create(&models.Product{ID: "p1", Name: "Night Cream", Price: 20, Category: "Moisturizers", ImageURL: "x", Stock: 7})

	calls := 0
	client := fakeModel(t, func(req *GenerateRequest) *GenerateResponse {
		calls++
		switch calls {
		case 1:
			if len(req.Tools) == 0 {
				t.Error("admin chat did not declare tools")
			}
			return &GenerateResponse{Candidates: []Candidate{{
				Content: Content{Role: "model", Parts: []Part{{
					FunctionCall: &FunctionCall{Name: "list_inventory"},
				}}},
			}}}
		default:
			// Second round must carry the tool result back.
			last := req.Contents[len(req.Contents)-1]
			if last.Parts[0].FunctionResponse == nil {
				t.Error("tool result not sent back to the model")
			} else if _, ok := last.Parts[0].FunctionResponse.Response["products"]; !ok {
				t.Error("inventory tool result missing products")
			}
			return textResponse("Night Cream has 7 units in stock.")
		}
	})

	reply, err := AdminChat(context.Background(), db, client, ChatRequest{History: chatHistory("How much night cream is left?")})
	if err != nil {
		t.Fatalf("AdminChat: %v", err)
	}
	if reply != "Night Cream has 7 units in stock." {
		t.Errorf("reply = %q", reply)
	}
	if calls != 2 {
		t.Errorf("model calls = %d, want 2", calls)
	}
}

func TestAdminChatBoundsToolLoop(t *testing.T) {
	db := newTestDB(t)

	client := fakeModel(t, func(req *GenerateRequest) *GenerateResponse {
		// Pathological model that never stops calling tools.
		return &GenerateResponse{Candidates: []Candidate{{
			Content: Content{Role: "model", Parts: []Part{{
				FunctionCall: &FunctionCall{Name: "recent_events"},
			}}},
		}}}
	})

	if _, err := AdminChat(context.Background(), db, client, ChatRequest{History: chatHistory("hello")}); err == nil {
		t.Fatal("expected tool-call budget error")
	}
}

func TestChatHandlerFallsBackOnFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	client := fakeModel(t, func(req *GenerateRequest) *GenerateResponse {
		return nil // model endpoint down
	})

	body, _ := json.Marshal(ChatRequest{History: chatHistory("hi")})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/assistant/chat", strings.NewReader(string(body)))
	c.Request.Header.Set("Content-Type", "application/json")

	ChatHandler(db, client)(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var reply ChatReply
	if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if reply.Response != chatFallback {
		t.Errorf("reply = %q, want canned fallback", reply.Response)
	}
}

func TestCallToolUnknownName(t *testing.T) {
	db := newTestDB(t)
	result := callTool(db, &FunctionCall{Name: "drop_tables"})
	if _, ok := result["error"]; !ok {
		t.Error("unknown tool did not report an error")
	}
}
