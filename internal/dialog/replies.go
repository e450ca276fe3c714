package dialog

import (
	"fmt"
	"strings"

	"github.com/windoze95/speakify-bot/internal/models"
	"github.com/windoze95/speakify-bot/internal/service"
)

// Reply texts. Kept in one place so tests can assert on them.
const (
	msgWelcome = "Welcome to the SPEAKIFY BOT! 🤖\n\nSelect a part to get a random practice question."

	msgUnauthorized = "⛔ Unauthorized."
	msgUnrecognized = "Sorry, I didn't understand that. Please use the buttons, or type /start to begin."

	msgAdminPanel     = "Welcome to the Admin Panel!"
	msgAskNewQuestion = "Send the new question text for %s."
	msgAskDeleteID    = "Send the ID of the question to delete from %s."
	msgAskBroadcast   = "Send the message you want to broadcast to all users."
	msgAskAdminChat   = "📝 Send me your message for the admin team. I will forward it."
	msgAskCategory    = "Which part?"

	msgQuestionAdded     = "✅ Question added successfully!"
	msgQuestionExists    = "That question already exists."
	msgQuestionDeleted   = "✅ Question deleted successfully!"
	msgQuestionNotFound  = "Question ID not found."
	msgEmptyQuestionText = "The question text cannot be empty. Please send the text, or press ❌ Cancel."
	msgProfaneQuestion   = "That text is not appropriate for a question. Nothing was added."
	msgInvalidID         = "Invalid ID. Please send a number, or press ❌ Cancel."
	msgEmptyCategory     = "No questions found in %s yet."
	msgStorageError      = "Something went wrong on our side. Please try again."

	msgVoicePrompt   = "🎤 AI Examiner is ready!\n\nSend me a voice message with your answer (max %d minutes). I will analyze it and give you feedback and a model answer."
	msgVoiceTooLong  = "⚠️ Your voice message is too long (%ds). Please keep it under %d seconds."
	msgVoiceExpected = "Please send a voice message, or press ❌ Cancel to go back."

	msgCancelled = "❌ Cancelled."

	msgBroadcastStarted = "Broadcasting your message to all users... This may take a moment."
	msgAdminMessageSent = "✅ Your message has been sent to the admin team!"
)

// formatQuestionReply renders a served question.
func formatQuestionReply(q *models.Question) string {
	return fmt.Sprintf("💬 %s Question:\n\n%s", q.Category.Title(), q.Text)
}

// formatQuestionPage renders one page of a category listing.
func formatQuestionPage(category models.QuestionCategory, page *service.QuestionPage) string {
	if page.Total == 0 {
		return fmt.Sprintf(msgEmptyCategory, category.Title())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 %s Questions (Page %d/%d):\n", category.Title(), page.Page, page.TotalPages)
	for _, q := range page.Questions {
		fmt.Fprintf(&b, "\nID: %d - %s", q.ID, q.Text)
	}
	return b.String()
}

// formatBroadcastSummary renders the post-broadcast report for the sender.
func formatBroadcastSummary(result *service.BroadcastResult) string {
	return fmt.Sprintf("📢 Broadcast Complete\n\n✅ Sent successfully to: %d users.\n❌ Failed for: %d users.",
		result.Sent, result.Failed)
}

// formatStats renders the admin statistics report.
func formatStats(stats *service.UsageStats, questionCounts map[models.QuestionCategory]int64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Bot Statistics\n\n👥 Total Users: %d\n", stats.TotalUsers)
	fmt.Fprintf(&b, "☀️ DAU: %d | 🗓️ WAU: %d | 📅 MAU: %d\n", stats.DailyActive, stats.WeeklyActive, stats.MonthlyActive)
	b.WriteString("\n--- Content ---")
	for _, category := range models.AllCategories() {
		fmt.Fprintf(&b, "\n%s: %d", category.Title(), questionCounts[category])
	}
	return b.String()
}

// formatForwardedMessage renders a user message forwarded to the admins.
func formatForwardedMessage(chatID int64, text string) string {
	return fmt.Sprintf("👤 New message from user %d:\n\n%s", chatID, text)
}
