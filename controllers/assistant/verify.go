package assistantControllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glowcare-gm/glowcare-api/models"
	"gorm.io/gorm"
)

type VerifyIDRequest struct {
	IDFront string `json:"idFront" binding:"required"` // data URI, front of the card
	IDBack  string `json:"idBack" binding:"required"`  // data URI, back of the card
}

type VerifyIDVerdict struct {
	IsIDCard bool   `json:"isIdCard"`
	IsClear  bool   `json:"isClear"`
	Reason   string `json:"reason"`
}

// Passed reports whether the verdict allows checkout to continue.
func (v VerifyIDVerdict) Passed() bool {
	return v.IsIDCard && v.IsClear
}

// failedVerdict is the fail-closed result: the gate never treats a
// broken verification call as "skip verification".
func failedVerdict() VerifyIDVerdict {
	return VerifyIDVerdict{
		IsIDCard: false,
		IsClear:  false,
		Reason:   "We couldn't process the ID images. Please try uploading them again.",
	}
}

const verifyPrompt = `You are an automated ID verification assistant for an e-commerce store. You will be given two images: the front and back of a customer's ID card.

Your task is to determine two things:
1. Do the images appear to be legitimate government-issued ID cards (like a national ID, driver's license, passport card, etc.)?
2. Are the images clear, in focus, well-lit, and not obscured? The text should be generally readable, even if you can't make out the specific details.

If both images seem to be valid ID cards AND are clear, set 'isIdCard' and 'isClear' to true and 'reason' to an empty string.
If an image is blurry, dark, or hard to see, set 'isClear' to false and provide a reason like "The front image is too blurry." or "The back image is too dark."
If an image does not look like an ID card at all (e.g., it's a picture of a cat), set 'isIdCard' to false and provide a reason like "The front image does not appear to be an ID card."`

var verifySchema = &Schema{
	Type: "object",
	Properties: map[string]*Schema{
		"isIdCard": {Type: "boolean", Description: "Whether both images appear to be legitimate government-issued ID cards."},
		"isClear":  {Type: "boolean", Description: "Whether both images are clear, in focus, and not obscured."},
		"reason":   {Type: "string", Description: "A brief, user-friendly reason explaining why verification failed. Empty if successful."},
	},
	Required: []string{"isIdCard", "isClear", "reason"},
}

// parseDataURI splits a "data:<mime>;base64,<data>" payload.
func parseDataURI(uri string) (mimeType, data string, err error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", "", errors.New("not a data URI")
	}
	rest := strings.TrimPrefix(uri, "data:")
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return "", "", errors.New("data URI is not base64-encoded")
	}
	mimeType = rest[:sep]
	data = rest[sep+len(";base64,"):]
	if mimeType == "" || data == "" {
		return "", "", errors.New("empty data URI")
	}
	return mimeType, data, nil
}

// VerifyID sends both images to the model and returns its structured
// verdict. Any transport, model, or parse failure is an error; callers
// translate that into the fail-closed verdict.
func VerifyID(ctx context.Context, client *Client, front, back string) (VerifyIDVerdict, error) {
	frontMime, frontData, err := parseDataURI(front)
	if err != nil {
		return VerifyIDVerdict{}, err
	}
	backMime, backData, err := parseDataURI(back)
	if err != nil {
		return VerifyIDVerdict{}, err
	}

	req := &GenerateRequest{
		Contents: []Content{{
			Role: "user",
			Parts: []Part{
				{Text: verifyPrompt},
				{Text: "Front of ID:"},
				{InlineData: &InlineData{MimeType: frontMime, Data: frontData}},
				{Text: "Back of ID:"},
				{InlineData: &InlineData{MimeType: backMime, Data: backData}},
			},
		}},
		GenerationConfig: &GenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   verifySchema,
		},
	}

	resp, err := client.GenerateContent(ctx, req)
	if err != nil {
		return VerifyIDVerdict{}, err
	}
	part := resp.FirstPart()
	if part == nil || part.Text == "" {
		return VerifyIDVerdict{}, errors.New("model returned no verdict")
	}

	var verdict VerifyIDVerdict
	if err := json.Unmarshal([]byte(part.Text), &verdict); err != nil {
		return VerifyIDVerdict{}, err
	}
	if !verdict.Passed() && verdict.Reason == "" {
		verdict.Reason = "The ID images could not be verified."
	}
	return verdict, nil
}

// POST /assistant/verify-id
//
// Always answers 200 with a verdict; a blocked verdict carries a
// non-empty reason for the shopper.
func VerifyIDHandler(db *gorm.DB, client *Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyIDRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 45*time.Second)
		defer cancel()

		verdict, err := VerifyID(ctx, client, req.IDFront, req.IDBack)
		if err != nil {
			verdict = failedVerdict()
		}

		if !verdict.Passed() {
			models.LogEvent(db, models.EventIDVerificationFailed,
				"ID verification blocked a checkout: "+verdict.Reason, nil)
		}
		c.JSON(http.StatusOK, verdict)
	}
}
