package assistantControllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glowcare-gm/glowcare-api/middleware"
	"github.com/glowcare-gm/glowcare-api/models"
	"gorm.io/gorm"
)

type ChatMessage struct {
	Role    string `json:"role" binding:"required,oneof=user bot"`
	Content string `json:"content" binding:"required"`
}

type ProductContext struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ChatRequest struct {
	History        []ChatMessage   `json:"history" binding:"required,min=1,dive"`
	ProductContext *ProductContext `json:"productContext"`
}

type ChatReply struct {
	Response string `json:"response"`
}

const chatFallback = "Sorry, I'm having a little trouble responding right now. Please try again in a moment."

const customerPrompt = `You are a friendly and expert skincare assistant for GlowCare Gambia, an online skincare store. Your personality is helpful, professional, and welcoming.

You are having a conversation with a customer. Use the conversation history to understand the context and provide relevant, concise answers. Do not repeat greetings in every message. Get straight to the point while maintaining a friendly tone.

Only recommend products from the catalog below. Never invent products or prices.`

const adminPrompt = `You are an operations assistant for the staff of GlowCare Gambia, an online skincare store. Answer questions about inventory and recent store activity. Use the list_inventory and recent_events tools to look up live data before answering; do not guess stock levels.`

// maxToolRounds bounds the admin function-calling loop so a confused
// model cannot spin tool calls forever.
const maxToolRounds = 3

var adminTools = []Tool{{
	FunctionDeclarations: []FunctionDeclaration{
		{
			Name:        "list_inventory",
			Description: "List products with current stock counts and prices. Optionally filter by category.",
			Parameters: &Schema{
				Type: "object",
				Properties: map[string]*Schema{
					"category": {Type: "string", Description: "One of: Sunscreens, Cleansers, Moisturizers, Serums."},
				},
			},
		},
		{
			Name:        "recent_events",
			Description: "Fetch the most recent store activity log entries (orders, registrations, verification failures).",
			Parameters: &Schema{
				Type: "object",
				Properties: map[string]*Schema{
					"limit": {Type: "integer", Description: "How many entries to return, up to 50."},
				},
			},
		},
	},
}}

var chatSchema = &Schema{
	Type: "object",
	Properties: map[string]*Schema{
		"response": {Type: "string", Description: "The chatbot response to the user query."},
	},
	Required: []string{"response"},
}

func historyContents(history []ChatMessage) []Content {
	contents := make([]Content, 0, len(history))
	for _, msg := range history {
		role := "user"
		if msg.Role == "bot" {
			role = "model"
		}
		contents = append(contents, Content{Role: role, Parts: []Part{{Text: msg.Content}}})
	}
	return contents
}

// CustomerChat answers a shopper, restricted to recommending from the
// live product list. The reply comes back as schema-checked JSON.
func CustomerChat(ctx context.Context, db *gorm.DB, client *Client, req ChatRequest) (string, error) {
	var products []models.Product
	if err := db.Order("created_at DESC").Limit(50).Find(&products).Error; err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(customerPrompt)
	sb.WriteString("\n\nCATALOG:\n")
	for _, p := range products {
		fmt.Fprintf(&sb, "- %s (D%.2f, %s): %s\n", p.Name, p.Price, p.Category, p.Description)
	}
	if req.ProductContext != nil {
		fmt.Fprintf(&sb, "\nThe customer is currently looking at this product, so prioritize it if their question is related.\n- Product Name: %s\n- Product Description: %s\n",
			req.ProductContext.Name, req.ProductContext.Description)
	}

	genReq := &GenerateRequest{
		SystemInstruction: &Content{Parts: []Part{{Text: sb.String()}}},
		Contents:          historyContents(req.History),
		GenerationConfig: &GenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   chatSchema,
		},
	}
	resp, err := client.GenerateContent(ctx, genReq)
	if err != nil {
		return "", err
	}
	part := resp.FirstPart()
	if part == nil || part.Text == "" {
		return "", errors.New("model returned no reply")
	}
	var reply ChatReply
	if err := json.Unmarshal([]byte(part.Text), &reply); err != nil {
		return "", err
	}
	if reply.Response == "" {
		return "", errors.New("model returned an empty reply")
	}
	return reply.Response, nil
}

// AdminChat answers a staff member, letting the model query live
// inventory and the activity feed through a bounded tool loop.
func AdminChat(ctx context.Context, db *gorm.DB, client *Client, req ChatRequest) (string, error) {
	contents := historyContents(req.History)

	for round := 0; round <= maxToolRounds; round++ {
		genReq := &GenerateRequest{
			SystemInstruction: &Content{Parts: []Part{{Text: adminPrompt}}},
			Contents:          contents,
			Tools:             adminTools,
		}
		resp, err := client.GenerateContent(ctx, genReq)
		if err != nil {
			return "", err
		}
		part := resp.FirstPart()
		if part == nil {
			return "", errors.New("model returned no reply")
		}

		if part.FunctionCall == nil {
			if part.Text == "" {
				return "", errors.New("model returned an empty reply")
			}
			return part.Text, nil
		}

		result := callTool(db, part.FunctionCall)
		contents = append(contents,
			resp.Candidates[0].Content,
			Content{Role: "user", Parts: []Part{{FunctionResponse: &FunctionResponse{
				Name:     part.FunctionCall.Name,
				Response: result,
			}}}},
		)
	}
	return "", errors.New("model exceeded the tool-call budget")
}

func callTool(db *gorm.DB, call *FunctionCall) map[string]any {
	switch call.Name {
	case "list_inventory":
		query := db.Model(&models.Product{}).Order("name")
		if category, ok := call.Args["category"].(string); ok && category != "" {
			query = query.Where("category = ?", category)
		}
		var products []models.Product
		if err := query.Find(&products).Error; err != nil {
			return map[string]any{"error": "inventory lookup failed"}
		}
		inventory := make([]map[string]any, 0, len(products))
		for _, p := range products {
			inventory = append(inventory, map[string]any{
				"name": p.Name, "category": p.Category, "price": p.Price, "stock": p.Stock,
			})
		}
		return map[string]any{"products": inventory}

	case "recent_events":
		limit := 20
		if v, ok := call.Args["limit"].(float64); ok && v >= 1 && v <= 50 {
			limit = int(v)
		}
		events, err := models.RecentEvents(db, limit)
		if err != nil {
			return map[string]any{"error": "event lookup failed"}
		}
		feed := make([]map[string]any, 0, len(events))
		for _, e := range events {
			feed = append(feed, map[string]any{
				"type": string(e.Type), "message": e.Message, "at": e.CreatedAt.Format(time.RFC3339),
			})
		}
		return map[string]any{"events": feed}
	}
	return map[string]any{"error": "unknown tool: " + call.Name}
}

// POST /assistant/chat
//
// Customers get catalog-restricted recommendations; callers presenting
// the admin API key get the tool-backed operations assistant. Failures
// degrade to an apologetic canned reply rather than an error.
func ChatHandler(db *gorm.DB, client *Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 45*time.Second)
		defer cancel()

		var reply string
		var err error
		if middleware.HasAdminKey(c) {
			reply, err = AdminChat(ctx, db, client, req)
		} else {
			reply, err = CustomerChat(ctx, db, client, req)
		}
		if err != nil {
			c.JSON(http.StatusOK, ChatReply{Response: chatFallback})
			return
		}
		c.JSON(http.StatusOK, ChatReply{Response: reply})
	}
}
