package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dt-fin-tools/lawhelper/internal/ark"
)

func TestBuildReviewPrompt(t *testing.T) {
	content := `{"title": "Jira Attachment Content", "paragraphs": ["第一条 合同标的"]}`

	prompt, err := BuildReviewPrompt(content)
	require.NoError(t, err)

	// The extracted content is embedded verbatim between the instruction
	// sections.
	assert.Contains(t, prompt, content)
	assert.Contains(t, prompt, "### 审阅要求")
	assert.Contains(t, prompt, "### 合同内容")
	assert.Contains(t, prompt, "### 输出格式要求")
	assert.Contains(t, prompt, "【整体结论】")
}

func TestFormatComment(t *testing.T) {
	result := &ark.ReviewResult{
		Text:        "【合法性检查】\n条款合规。\n\n【整体结论】\n基本合规。",
		Model:       "doubao-seed-1-6",
		CallID:      "resp-abc",
		TotalTokens: 1234,
	}

	comment, err := FormatComment(result)
	require.NoError(t, err)

	// Review text passes through unmodified, footer follows after a blank
	// line.
	assert.True(t, len(comment) > len(result.Text))
	assert.Contains(t, comment, result.Text)
	assert.Contains(t, comment, "本次调用的AI模型为doubao-seed-1-6, AI回复ID为resp-abc, AI Token消耗为1234。")
	assert.Equal(t, result.Text+"\n\n"+"本次调用的AI模型为doubao-seed-1-6, AI回复ID为resp-abc, AI Token消耗为1234。", comment)
}
