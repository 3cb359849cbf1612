package questionnaire

import "strings"

// DefaultSeedQuestions are asked, in order, before any generation happens.
func DefaultSeedQuestions() []Question {
	return []Question{
		MustParseQuestion("問題：你心情好的時候喜歡待在什麼地方？\n選項一：室內\n選項二：室外"),
		MustParseQuestion("問題：你心情不好的時候喜歡待在什麼地方？\n選項一：室內\n選項二：室外"),
	}
}

// ExhaustedMessage is shown when no valid, unseen question could be generated.
const ExhaustedMessage = "⚠️ 抱歉，無法產生符合格式且不重複的問題。請稍後再試。"

const followUpTemplate = `你是一位活動推薦助理，正在根據使用者的回覆進行問卷調查。

你要設計一個「新的問題」，以更了解他的個性與偏好，並使用以下格式：

---
問題：這裡是你設計的新問題？
選項一：這是第一個選項
選項二：這是第二個選項
---

⚠️ 請注意：
1. 僅輸出三行，格式如上。
2. 問題必須與下列對話內容有關。
3. 請**避免重複以下問題**或語意相似的問題：
{previous_titles}
4. 禁止添加開場白、說明或 JSON 包裝。
5. 僅使用繁體中文輸出。

對話紀錄：
{chat_history}

使用者剛剛回答：{last_answer}
`

const summaryTemplate = "你是一位活動推薦專家。以下是與使用者的對話內容：\n{chat_history}\n\n請根據這些回答推薦一個最適合他的休閒娛樂活動，並簡短說明推薦原因（不超過100字）。請用繁體中文回答。"

func followUpPrompt(history Transcript, lastAnswer string, titles TitleSet) string {
	return strings.NewReplacer(
		"{previous_titles}", titles.Render(),
		"{chat_history}", history.Render(),
		"{last_answer}", lastAnswer,
	).Replace(followUpTemplate)
}

func summaryPrompt(history Transcript) string {
	return strings.Replace(summaryTemplate, "{chat_history}", history.Render(), 1)
}
