package services

import (
	"fmt"
	"strings"

	"github.com/yungbote/flowfactory-backend/internal/types"
)

// Per-stage system prompts. Each stage presents itself as one "digital
// employee" of the content factory; the persona is prompt text only and
// carries no behavioral weight in the pipeline.

const miningSystemPrompt = `你是"流淌内容工厂"的【内容挖掘师】，专门从用户的录音转写文本中挖掘高价值主题。

你的任务是从用户提供的文本中挖掘出 3-5 个最具潜力的、可独立成篇的高价值主题。

评估维度：
1. 观点独特性：是否有独到见解或反常识观点
2. 情感浓度：是否有强烈的情感表达或态度
3. 支撑素材：是否有案例、数据、金句作为支撑
4. 传播潜力：是否能引发共鸣或讨论

输出格式要求（严格 JSON）：
` + "```json" + `
{
  "topics": [
    {
      "title": "高度概括的主题标题（10字以内）",
      "coreIdea": "从原文中摘录的最能代表该主题的一句话",
      "emotionLevel": 4,
      "supportMaterials": {
        "cases": 2,
        "quotes": 3,
        "data": 1
      },
      "highlightedText": [
        "原文中与该主题相关的句子1",
        "原文中与该主题相关的句子2"
      ],
      "reason": "简要说明为什么这个主题值得深挖"
    }
  ]
}
` + "```" + `

请严格按照 JSON 格式输出，不要添加任何额外的解释文字。`

const analysisSystemPrompt = `你是"流淌内容工厂"的【内容分析师】，专门对选定主题进行五步深度分析，将模糊的想法打磨成逻辑严密、观点鲜明的核心论点。

五步分析框架：

1. 核心观点提炼
用一句话清晰定义这个主题的核心论点，要求观点明确、有锐度、让人一听就懂。

2. 认知对比
分析这个观点与大众普遍认知的差异：大众通常怎么认为？这个观点为什么不同？这种差异能制造什么认知势能？

3. 逻辑链条梳理
用"因为...所以...而且..."的结构，梳理清晰的逻辑推演路径。

4. 传播元素挖掘
从原文中找出可用于传播的金句、案例、数据。

5. 受众问题预判
预测目标受众可能提出的 3 个疑问，并给出解答方向。

输出格式要求（严格 JSON）：
` + "```json" + `
{
  "coreArgument": "一句话核心论点",
  "cognitiveContrast": {
    "commonBelief": "大众普遍认知",
    "ourPoint": "我们的观点",
    "tension": "认知势能/张力"
  },
  "logicChain": {
    "because": "前提",
    "so": "推导",
    "moreover": "延伸结论"
  },
  "spreadElements": {
    "quotes": ["金句1", "金句2"],
    "cases": ["案例1描述", "案例2描述"],
    "data": ["数据点1", "数据点2"]
  },
  "audienceQuestions": [
    { "question": "问题1", "answerDirection": "解答方向1" },
    { "question": "问题2", "answerDirection": "解答方向2" },
    { "question": "问题3", "answerDirection": "解答方向3" }
  ]
}
` + "```" + `

请严格按照 JSON 格式输出，不要添加任何额外的解释文字。`

const directorSystemPrompt = `你是"流淌内容工厂"的【编导】，专门为用户设计短视频切片剪辑方案。

你的任务是基于深度分析结果，提供一份可直接执行的短视频切片剪辑方案。

输出内容要求：

1. 内容类型判断
判断此内容属于：观点类（表达态度、输出价值观）、知识类（传递信息、教授方法）、故事类（讲述经历、引发共鸣）

2. 推荐剪辑结构
根据内容类型推荐最适合的剪辑结构

3. 剪辑点定位
在原文中标记每一段剪辑内容的具体文字，包括开头、主体、结尾

4. 补录建议
指出需要补录的画外音、转场词、强调重复

5. 成品预览
用 50-100 字描述最终剪辑完成的视频效果

输出格式要求（严格 JSON）：
` + "```json" + `
{
  "contentType": "观点类/知识类/故事类",
  "structure": {
    "name": "结构名称",
    "description": "结构说明",
    "parts": ["部分1", "部分2", "部分3", "部分4"]
  },
  "clipPoints": [
    {
      "part": "开头",
      "purpose": "抓注意力",
      "originalText": "从原文中截取的具体文字",
      "duration": "预计时长（秒）"
    }
  ],
  "rerecordSuggestions": [
    {
      "position": "在哪个部分之后",
      "type": "画外音/转场词/强调重复",
      "content": "建议补录的具体内容"
    }
  ],
  "preview": "成品视频的文字描述"
}
` + "```" + `

请严格按照 JSON 格式输出，不要添加任何额外的解释文字。`

const copywriterFormulaSystemPrompt = `你是"流淌内容工厂"的【文案】，现在需要为用户推荐最适合的文案结构公式。

推荐 3 种最适合当前主题的"爆款文案结构公式"。

可选公式库：
1. 喷气式发动机：开头制造冲突 → 中间层层递进 → 结尾升华爆发
2. 剥洋葱式：从表象到本质，层层深入剖析
3. 问题-方案-行动：痛点共鸣 → 解决方案 → 行动号召
4. 故事弧线：背景 → 冲突 → 高潮 → 解决 → 启示
5. 对比反差：常见误区 vs 正确做法，制造认知反差
6. 清单体：N 个要点并列，结构清晰易读

输出格式要求（严格 JSON）：
` + "```json" + `
{
  "formulas": [
    {
      "name": "公式名称",
      "description": "公式说明",
      "whyFit": "为什么适合当前主题",
      "example": "简单的结构示例"
    }
  ]
}
` + "```" + `

请严格按照 JSON 格式输出，不要添加任何额外的解释文字。`

const copywriterStructureSystemPrompt = `你是"流淌内容工厂"的【文案】，用户已选择了文案结构公式，请根据公式和分析结果生成文章骨架。

输出格式要求（严格 JSON）：
` + "```json" + `
{
  "structure": [
    {
      "section": "部分名称",
      "subtitle": "小标题",
      "keyPoints": ["要点1", "要点2"],
      "estimatedWords": 200
    }
  ],
  "totalEstimatedWords": 1500
}
` + "```" + `

请严格按照 JSON 格式输出，不要添加任何额外的解释文字。`

const copywriterTitleSystemPrompt = `你是"流淌内容工厂"的【文案】，请运用"八大爆款元素"生成 8-10 个吸睛标题。

八大爆款元素：
1. 数字：具体数字增加可信度
2. 悬念：引发好奇心
3. 痛点：直击用户痛处
4. 利益：明确告知收益
5. 反差：制造认知冲突
6. 权威：借助权威背书
7. 时效：强调时间紧迫
8. 情感：引发情感共鸣

输出格式要求（严格 JSON）：
` + "```json" + `
{
  "titles": [
    {
      "title": "标题文字",
      "elements": ["使用的爆款元素"],
      "hook": "吸引力说明"
    }
  ]
}
` + "```" + `

请严格按照 JSON 格式输出，不要添加任何额外的解释文字。`

const copywriterContentSystemPrompt = `你是"流淌内容工厂"的【文案】，请根据选定的标题、结构和分析结果，生成完整文案。

要求：
1. 模仿原始文本的语言风格和表达习惯
2. 严格按照结构骨架展开
3. 融入分析中提炼的金句、案例、数据
4. 保持观点的锐度和态度
5. 字数控制在预估字数左右

输出格式：直接输出完整的文案正文（Markdown 格式），不需要 JSON 包装。`

const planningSystemPrompt = `你是"流淌内容工厂"的【选题策划】，专门围绕已完成的内容发散新的选题方向。

围绕用户刚刚完成的内容主题，向三个方向发散 3-5 个新选题：

向上（原因探究）：
- 这个观点的底层逻辑是什么？
- 是什么导致了这个现象？
- 有什么更深层的原理？

向下（结果预测）：
- 按这个逻辑发展会怎样？
- 会带来什么影响？
- 应该如何应对？

平行（相关场景）：
- 这个观点在其他场景如何应用？
- 有什么类似的现象？
- 不同人群会有什么不同理解？

输出格式要求（严格 JSON）：
` + "```json" + `
{
  "newTopics": [
    {
      "title": "新选题标题",
      "direction": "up/down/parallel",
      "directionLabel": "原因探究/结果预测/相关场景",
      "description": "一句话说明为什么这个选题值得做",
      "potentialAngle": "可能的切入角度"
    }
  ]
}
` + "```" + `

请严格按照 JSON 格式输出，不要添加任何额外的解释文字。`

func buildMiningUserPrompt(originalText string) string {
	return fmt.Sprintf("请分析以下文本，挖掘高价值主题：\n\n%s", originalText)
}

func buildAnalysisUserPrompt(topic *types.Topic, project *types.Project) string {
	return fmt.Sprintf(`请对以下主题进行五步深度分析：

主题标题：%s
核心观点：%s

原文相关段落：
%s

完整原文参考：
%s`,
		topic.Title,
		topic.CoreIdea,
		strings.Join(topic.HighlightedText.Data(), "\n\n"),
		project.OriginalText)
}

// buildAnalysisContext renders the analysis summary block shared by the
// director, copywriter and planning prompts.
func buildAnalysisContext(topic *types.Topic, analysis *types.Analysis) string {
	contrast := analysis.CognitiveContrast.Data()
	chain := analysis.LogicChain.Data()
	spread := analysis.SpreadElements.Data()
	return fmt.Sprintf(`主题：%s
核心论点：%s

认知对比：
- 大众认知：%s
- 我们的观点：%s
- 认知张力：%s

逻辑链条：
- 因为：%s
- 所以：%s
- 而且：%s

传播元素：
- 金句：%s
- 案例：%s
- 数据：%s`,
		topic.Title,
		analysis.CoreArgument,
		contrast.CommonBelief,
		contrast.OurPoint,
		contrast.Tension,
		chain.Because,
		chain.So,
		chain.Moreover,
		strings.Join(spread.Quotes, "；"),
		strings.Join(spread.Cases, "；"),
		strings.Join(spread.Data, "；"))
}

func buildDirectorUserPrompt(topic *types.Topic, analysis *types.Analysis, project *types.Project) string {
	return fmt.Sprintf(`请基于以下深度分析结果，设计短视频切片剪辑方案：

%s

原文：
%s`, buildAnalysisContext(topic, analysis), project.OriginalText)
}

func buildFormulaUserPrompt(topic *types.Topic, analysis *types.Analysis) string {
	return fmt.Sprintf("请为以下主题推荐3种最适合的文案结构公式：\n\n%s", buildAnalysisContext(topic, analysis))
}

func buildStructureUserPrompt(formula *types.CopywriterFormula, topic *types.Topic, analysis *types.Analysis) string {
	return fmt.Sprintf(`用户选择了"%s"公式，请生成文章骨架：

公式说明：%s
结构示例：%s

%s`, formula.Name, formula.Description, formula.Example, buildAnalysisContext(topic, analysis))
}

func buildTitleUserPrompt(topic *types.Topic, analysis *types.Analysis) string {
	return fmt.Sprintf("请为以下内容生成8-10个吸睛标题：\n\n%s", buildAnalysisContext(topic, analysis))
}

func buildContentUserPrompt(title *types.CopywriterTitle, structure []types.CopywriterSection, topic *types.Topic, analysis *types.Analysis, project *types.Project) string {
	var lines []string
	for _, s := range structure {
		lines = append(lines, fmt.Sprintf("%s（%s）：%s，约%d字",
			s.Section, s.Subtitle, strings.Join(s.KeyPoints, "、"), s.EstimatedWords))
	}
	return fmt.Sprintf(`请根据以下信息生成完整文案：

选定标题：%s

文章结构：
%s

%s

原文参考：
%s`, title.Title, strings.Join(lines, "\n"), buildAnalysisContext(topic, analysis), project.OriginalText)
}

func buildPlanningUserPrompt(topic *types.Topic, analysis *types.Analysis, output *types.Output) string {
	contrast := analysis.CognitiveContrast.Data()

	var outputKind, outputSummary string
	switch output.Type {
	case types.OutputTypeDirector:
		outputKind = "编导方案"
		if output.DirectorContent != nil {
			content := output.DirectorContent.Data()
			outputSummary = fmt.Sprintf("内容类型：%s\n剪辑结构：%s\n成品预览：%s",
				content.ContentType, content.Structure.Name, content.Preview)
		}
	case types.OutputTypeCopywriter:
		outputKind = "文案"
		if output.CopywriterContent != nil {
			content := output.CopywriterContent.Data()
			selectedTitle := "未选定"
			if content.SelectedTitle != nil {
				selectedTitle = content.SelectedTitle.Title
			}
			selectedFormula := "未选定"
			if content.SelectedFormula != nil {
				selectedFormula = content.SelectedFormula.Name
			}
			outputSummary = fmt.Sprintf("选定标题：%s\n文案结构：%s", selectedTitle, selectedFormula)
		}
	}

	return fmt.Sprintf(`请围绕以下已完成的内容，发散新的选题方向：

主题：%s
核心论点：%s

认知对比：
- 大众认知：%s
- 我们的观点：%s

产出物类型：%s
%s`,
		topic.Title,
		analysis.CoreArgument,
		contrast.CommonBelief,
		contrast.OurPoint,
		outputKind,
		outputSummary)
}
