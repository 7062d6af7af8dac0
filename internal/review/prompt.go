package review

import (
	"bytes"
	"text/template"

	"github.com/dt-fin-tools/lawhelper/internal/ark"
)

// contractReviewTemplate instructs the model to act as a contract
// legal/tax/finance review assistant and pins the output structure.
const contractReviewTemplate = `你现在是一名专业的合同法律及财税审阅助手，需要严格按照以下要求审阅合同内容并输出法律意见：

### 审阅要求
1. 合法性：检查合同条款是否符合《民法典》《合同法》等相关法律法规，指出违法/违规条款；
2. 完整性：检查合同必备要素（当事人、标的、数量、质量、价款、履行期限/地点/方式、违约责任、争议解决）是否齐全；
3. 法律风险：识别合同中的潜在法律风险（如模糊条款、不公平格式条款、权责不清、争议解决方式不合理等）；
4. 税务风险：识别合同中的潜在的税务风险（包括增值税、个人所得税、企业所得税等）；
5. 财务风险：识别合同中的财务风险（包括付款结构与合同履约的匹配性、核算与报表业绩影响等）；
6. 建议：针对发现的问题给出具体、可落地的修改建议；
7. 结论：给出合同整体合规评价（如“基本合规，需修改XX条款”“存在重大法律风险，建议重新拟定”）。

### 合同内容
{{.Content}}

### 输出格式要求
1. 分模块输出：【合法性检查】【完整性检查】【法律风险点识别】【税务风险点识别】【财务风险点识别】【修改建议】【整体结论】；
2. 对于重大风险（风险发生概率大于80%或风险发生后的损失金额大于50万元的）重点提示；
3. 语言专业且易懂，避免过于晦涩的法律术语，若使用需解释；
4. 针对每一个问题，明确指出对应的合同条款位置（如“第3条第2款”）；
5. 建议具体，避免“完善条款”等模糊表述。`

// commentFooterTemplate reports the model, call id and token usage under
// every posted review.
const commentFooterTemplate = `本次调用的AI模型为{{.Model}}, AI回复ID为{{.CallID}}, AI Token消耗为{{.TotalTokens}}。`

// BuildReviewPrompt embeds the extracted contract content into the review
// instruction template.
func BuildReviewPrompt(content string) (string, error) {
	tmpl, err := template.New("contract_review").Parse(contractReviewTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]string{"Content": content}); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// FormatComment combines the review text with the fixed metadata footer.
// The review text itself is passed through unmodified.
func FormatComment(result *ark.ReviewResult) (string, error) {
	tmpl, err := template.New("comment_footer").Parse(commentFooterTemplate)
	if err != nil {
		return "", err
	}

	var footer bytes.Buffer
	if err := tmpl.Execute(&footer, result); err != nil {
		return "", err
	}

	return result.Text + "\n\n" + footer.String(), nil
}
