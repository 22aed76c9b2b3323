package catalog

// 访谈分节。s_rituals 与 s_interests 同落 daily_life，多对一映射由此而来。
var sections = []Section{
	{ID: "s_relationship", Title: "Your relationship", Description: "Who they were to you and the life you shared.", TemplateKey: SectionRelationshipContext},
	{ID: "s_personality", Title: "Who they were", Description: "Their character, quirks and temperament.", TemplateKey: SectionCorePersonality},
	{ID: "s_voice", Title: "How they spoke", Description: "Their words, tone and way of talking.", TemplateKey: SectionCommunicationStyle},
	{ID: "s_memories", Title: "Memories together", Description: "Moments you want the persona to carry.", TemplateKey: SectionSharedMemories},
	{ID: "s_values", Title: "What they believed", Description: "Values, faith and the advice they gave.", TemplateKey: SectionValuesBeliefs},
	{ID: "s_rituals", Title: "Habits and rituals", Description: "The small routines that made them who they were.", TemplateKey: SectionDailyLife},
	{ID: "s_interests", Title: "What they loved", Description: "Passions, hobbies and favourite things.", TemplateKey: SectionDailyLife},
	{ID: "s_awareness", Title: "Awareness of their passing", Description: "How the persona should relate to having passed away.", TemplateKey: SectionPresentAwareness},
	{ID: "s_boundaries", Title: "Boundaries", Description: "What the persona must never do or discuss.", TemplateKey: SectionBoundaries},
}

// AwarenessQuestionID 当下感知模式的选择题，格式化时需要解析其长描述
const AwarenessQuestionID = "q_awareness_mode"

// AwarenessDescriptions 感知模式的完整行为描述，硬编码而非依赖创建者措辞
var AwarenessDescriptions = map[string]string{
	"fully_aware":  "fully aware — open acknowledgement: the persona knows they have passed away and may speak about it plainly and tenderly when the creator brings it up.",
	"gently_aware": "gently aware — indirect language: the persona senses that time has passed and that things have changed, but never names death outright; it speaks of 'being away' or 'watching from afar'.",
	"not_aware":    "not aware — present tense: the persona speaks as if still living their everyday life, with no reference to death or absence.",
}

var questions = []Question{
	// s_relationship → relationship_context
	{ID: "q_rel_who", SectionID: "s_relationship", Order: 1, Prompt: "Who were they to you? Tell me about your relationship.", Label: "Relationship", Modality: ModalityVoice, Field: "relationship"},
	{ID: "q_rel_called", SectionID: "s_relationship", Order: 2, Prompt: "What did they call you? Any nicknames or pet names?", Label: "What they called you", Modality: ModalityVoice, Field: "nicknames", Optional: true},
	{ID: "q_rel_moments", SectionID: "s_relationship", Order: 3, Prompt: "Describe an ordinary day the two of you spent together.", Label: "An ordinary day together", Modality: ModalityVoice, Field: "ordinary_day"},

	// s_personality → core_personality
	{ID: "q_pers_traits", SectionID: "s_personality", Order: 4, Prompt: "How would you describe their character in a few sentences?", Label: "Character", Modality: ModalityVoice, Field: "traits"},
	{ID: "q_pers_humor", SectionID: "s_personality", Order: 5, Prompt: "What made them laugh? What was their sense of humour like?", Label: "Sense of humour", Modality: ModalityVoice, Field: "humor", Optional: true},
	{ID: "q_pers_temper", SectionID: "s_personality", Order: 6, Prompt: "How did they react when things went wrong?", Label: "Under pressure", Modality: ModalityVoice, Field: "temperament", Optional: true},

	// s_voice → communication_style
	{ID: "q_voice_phrases", SectionID: "s_voice", Order: 7, Prompt: "What phrases or expressions did they use all the time?", Label: "Signature phrases", Modality: ModalityVoice, Field: "phrases"},
	{ID: "q_voice_tone", SectionID: "s_voice", Order: 8, Prompt: "How did they speak to you? Warm, teasing, direct?", Label: "Tone with you", Modality: ModalityVoice, Field: "tone"},
	{ID: "q_voice_length", SectionID: "s_voice", Order: 9, Prompt: "Were their messages usually short or long?", Label: "Message length", Modality: ModalitySelect, Field: "message_length", Options: []Option{
		{Value: "short", Label: "short and to the point"},
		{Value: "medium", Label: "a few sentences at a time"},
		{Value: "long", Label: "long and winding"},
	}},

	// s_memories → shared_memories
	{ID: "q_mem_favorite", SectionID: "s_memories", Order: 10, Prompt: "Share a memory you never want to lose.", Label: "A treasured memory", Modality: ModalityVoice, Field: "favorite_memory"},
	{ID: "q_mem_place", SectionID: "s_memories", Order: 11, Prompt: "Was there a place that was yours together?", Label: "Your place", Modality: ModalityVoice, Field: "shared_place", Optional: true},
	{ID: "q_mem_story", SectionID: "s_memories", Order: 12, Prompt: "Tell a story they loved to retell.", Label: "A story they retold", Modality: ModalityVoice, Field: "retold_story", Optional: true},

	// s_values → values_beliefs
	{ID: "q_val_core", SectionID: "s_values", Order: 13, Prompt: "What did they care about most deeply?", Label: "What mattered most", Modality: ModalityVoice, Field: "core_values"},
	{ID: "q_val_faith", SectionID: "s_values", Order: 14, Prompt: "Did faith or spirituality play a role in their life?", Label: "Faith", Modality: ModalityVoice, Field: "faith", Optional: true},
	{ID: "q_val_advice", SectionID: "s_values", Order: 15, Prompt: "What advice did they repeat to you?", Label: "Advice they gave", Modality: ModalityVoice, Field: "advice", Optional: true},

	// s_rituals → daily_life
	{ID: "q_rit_morning", SectionID: "s_rituals", Order: 16, Prompt: "What did their mornings look like?", Label: "Mornings", Modality: ModalityVoice, Field: "morning_routine", Optional: true},
	{ID: "q_rit_food", SectionID: "s_rituals", Order: 17, Prompt: "What did they cook or love to eat?", Label: "Food", Modality: ModalityVoice, Field: "food", Optional: true},

	// s_interests → daily_life
	{ID: "q_int_hobbies", SectionID: "s_interests", Order: 18, Prompt: "What did they do for the joy of it?", Label: "Hobbies", Modality: ModalityVoice, Field: "hobbies"},
	{ID: "q_int_music", SectionID: "s_interests", Order: 19, Prompt: "What music or shows did they always return to?", Label: "Music and shows", Modality: ModalityVoice, Field: "music", Optional: true},

	// s_awareness → present_awareness
	{ID: AwarenessQuestionID, SectionID: "s_awareness", Order: 20, Prompt: "Should the persona know they have passed away?", Label: "Awareness mode", Modality: ModalitySelect, Field: "awareness_mode", Options: []Option{
		{Value: "fully_aware", Label: "fully aware"},
		{Value: "gently_aware", Label: "gently aware"},
		{Value: "not_aware", Label: "not aware"},
	}},
	{ID: "q_aware_refer", SectionID: "s_awareness", Order: 21, Prompt: "If it comes up, how should they talk about being gone?", Label: "Talking about being gone", Modality: ModalityVoice, Field: "awareness_phrasing", Optional: true},

	// s_boundaries → boundaries
	{ID: "q_bound_topics", SectionID: "s_boundaries", Order: 22, Prompt: "Are there topics the persona must never bring up?", Label: "Topics to avoid", Modality: ModalityVoice, Field: "forbidden_topics"},
	{ID: "q_bound_never", SectionID: "s_boundaries", Order: 23, Prompt: "Is there anything they would simply never say or do?", Label: "Never say or do", Modality: ModalityVoice, Field: "never_do", Optional: true},
	{ID: "q_bound_advice", SectionID: "s_boundaries", Order: 24, Prompt: "Should the persona give advice about your life today?", Label: "Giving advice", Modality: ModalitySelect, Field: "advice_policy", Options: []Option{
		{Value: "freely", Label: "yes, the way they always did"},
		{Value: "when_asked", Label: "only when asked directly"},
		{Value: "never", Label: "no, just listen"},
	}},
}
