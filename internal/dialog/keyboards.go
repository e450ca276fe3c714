package dialog

import (
	"fmt"

	"github.com/windoze95/speakify-bot/internal/models"
	"github.com/windoze95/speakify-bot/internal/transport"
)

// Callback payload prefixes and values.
const (
	btnCancel    = "cancel"
	btnAICheck   = "aicheck"
	btnChatAdmin = "chat_admin"
	btnListMenu  = "list_menu"

	prefixRandom = "random_"  // random_<category>
	prefixList   = "list_"    // list_<category>
	prefixPage   = "page_"    // page_<n>_<category>

	btnAdminAddMenu   = "admin_add_menu"
	btnAdminDelMenu   = "admin_del_menu"
	btnAdminListMenu  = "admin_list_menu"
	btnAdminStats     = "admin_stats"
	btnAdminBroadcast = "admin_broadcast"

	prefixAdminAdd  = "admin_add_"  // admin_add_<category>
	prefixAdminDel  = "admin_del_"  // admin_del_<category>
	prefixAdminList = "admin_list_" // admin_list_<category>
)

// mainMenuKeyboard is the keyboard sent with /start.
func mainMenuKeyboard() [][]transport.Button {
	return [][]transport.Button{
		{
			{Text: "1️⃣ Part 1", Data: prefixRandom + string(models.Part1)},
			{Text: "2️⃣ Part 2", Data: prefixRandom + string(models.Part2)},
			{Text: "3️⃣ Part 3", Data: prefixRandom + string(models.Part3)},
		},
		{
			{Text: "📜 List Questions", Data: btnListMenu},
			{Text: "💬 Chat with Admin", Data: btnChatAdmin},
		},
	}
}

// adminMenuKeyboard is the admin panel keyboard.
func adminMenuKeyboard() [][]transport.Button {
	return [][]transport.Button{
		{
			{Text: "➕ Add Question", Data: btnAdminAddMenu},
			{Text: "➖ Delete Question", Data: btnAdminDelMenu},
		},
		{
			{Text: "📄 List Questions", Data: btnAdminListMenu},
			{Text: "📊 User Statistics", Data: btnAdminStats},
		},
		{
			{Text: "📢 Broadcast", Data: btnAdminBroadcast},
		},
	}
}

// categoryKeyboard builds one row of category buttons whose payloads
// share the given prefix.
func categoryKeyboard(prefix string) [][]transport.Button {
	row := make([]transport.Button, 0, 3)
	for _, category := range models.AllCategories() {
		row = append(row, transport.Button{
			Text: category.Title(),
			Data: prefix + string(category),
		})
	}
	return [][]transport.Button{row}
}

// questionActionsKeyboard follows every served random question.
func questionActionsKeyboard(category models.QuestionCategory) [][]transport.Button {
	return [][]transport.Button{{
		{Text: "Get Another Question", Data: prefixRandom + string(category)},
		{Text: "🤖 AI Check", Data: btnAICheck},
	}}
}

// cancelKeyboard offers a way out of an awaiting state.
func cancelKeyboard() [][]transport.Button {
	return [][]transport.Button{{
		{Text: "❌ Cancel", Data: btnCancel},
	}}
}

// paginationKeyboard builds prev/next buttons for a listing page.
func paginationKeyboard(page, totalPages int, category models.QuestionCategory) [][]transport.Button {
	var row []transport.Button
	if page > 1 {
		row = append(row, transport.Button{
			Text: "⬅️ Previous",
			Data: fmt.Sprintf("%s%d_%s", prefixPage, page-1, category),
		})
	}
	if page < totalPages {
		row = append(row, transport.Button{
			Text: "Next ➡️",
			Data: fmt.Sprintf("%s%d_%s", prefixPage, page+1, category),
		})
	}
	if len(row) == 0 {
		return nil
	}
	return [][]transport.Button{row}
}
