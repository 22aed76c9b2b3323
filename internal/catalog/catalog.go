// Package catalog 提供结构化访谈的静态题库：访谈分节、题目、
// 以及访谈分节到 8 个行为模板分节的多对一映射。
// 数据随二进制编译，进程内只读，无任何错误分支。
package catalog

import "fmt"

// TemplateKey 行为模板中的 8 个固定分节
type TemplateKey string

const (
	SectionRelationshipContext TemplateKey = "relationship_context"
	SectionCorePersonality     TemplateKey = "core_personality"
	SectionCommunicationStyle  TemplateKey = "communication_style"
	SectionSharedMemories      TemplateKey = "shared_memories"
	SectionValuesBeliefs       TemplateKey = "values_beliefs"
	SectionDailyLife           TemplateKey = "daily_life"
	SectionPresentAwareness    TemplateKey = "present_awareness"
	SectionBoundaries          TemplateKey = "boundaries"
)

// TemplateKeys 模板分节的固定顺序，注水与校验都按此序遍历
var TemplateKeys = []TemplateKey{
	SectionRelationshipContext,
	SectionCorePersonality,
	SectionCommunicationStyle,
	SectionSharedMemories,
	SectionValuesBeliefs,
	SectionDailyLife,
	SectionPresentAwareness,
	SectionBoundaries,
}

// TotalQuestions 访谈题目总数。进度分母使用该常量而非实时题库长度，
// init 中与题库核对，防止两者悄悄漂移。
const TotalQuestions = 24

// Modality 题目的作答方式
type Modality string

const (
	ModalityVoice  Modality = "voice"  // 语音优先，也接受键入文本
	ModalitySelect Modality = "select" // 单选
)

// Option 单选题的一个选项
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Question 一道访谈题目
type Question struct {
	ID        string   `json:"id"`
	SectionID string   `json:"sectionId"`
	Order     int      `json:"order"`
	Prompt    string   `json:"prompt"` // 向创建者提出的问题
	Label     string   `json:"label"`  // 注入提示词时使用的短标签
	Modality  Modality `json:"modality"`
	Field     string   `json:"field"`
	Optional  bool     `json:"optional"`
	Options   []Option `json:"options,omitempty"`
}

// Section 访谈分节（向导的一页）；多个分节可落入同一个模板分节
type Section struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	TemplateKey TemplateKey `json:"templateKey"`
}

var (
	questionByID map[string]Question
	sectionByID  map[string]Section
)

func init() {
	if len(questions) != TotalQuestions {
		panic(fmt.Sprintf("catalog: TotalQuestions=%d but %d questions registered", TotalQuestions, len(questions)))
	}
	sectionByID = make(map[string]Section, len(sections))
	for _, s := range sections {
		sectionByID[s.ID] = s
	}
	questionByID = make(map[string]Question, len(questions))
	for _, q := range questions {
		if _, ok := sectionByID[q.SectionID]; !ok {
			panic(fmt.Sprintf("catalog: question %s references unknown section %s", q.ID, q.SectionID))
		}
		if _, dup := questionByID[q.ID]; dup {
			panic(fmt.Sprintf("catalog: duplicate question id %s", q.ID))
		}
		questionByID[q.ID] = q
	}
}

// QuestionByID 按题目 ID 查询
func QuestionByID(id string) (Question, bool) {
	q, ok := questionByID[id]
	return q, ok
}

// SectionByID 按分节 ID 查询
func SectionByID(id string) (Section, bool) {
	s, ok := sectionByID[id]
	return s, ok
}

// Sections 返回全部访谈分节（向导顺序）
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

// Questions 返回全部题目（向导顺序）
func Questions() []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	return out
}

// QuestionsInSection 返回某分节下的全部题目
func QuestionsInSection(sectionID string) []Question {
	var out []Question
	for _, q := range questions {
		if q.SectionID == sectionID {
			out = append(out, q)
		}
	}
	return out
}

// TemplateKeyFor 返回题目落入的模板分节；未知题目返回 false
func TemplateKeyFor(questionID string) (TemplateKey, bool) {
	q, ok := questionByID[questionID]
	if !ok {
		return "", false
	}
	return sectionByID[q.SectionID].TemplateKey, true
}

// OptionLabel 把单选值解析为人类可读标签；不认识的值原样返回
func OptionLabel(questionID, value string) string {
	q, ok := questionByID[questionID]
	if !ok {
		return value
	}
	for _, opt := range q.Options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}
