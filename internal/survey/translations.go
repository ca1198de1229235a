package survey

type answerTexts struct {
	a, b, c string
}

type translation struct {
	progress     string
	question     string
	answers      answerTexts
	riskLabels   map[RiskLevel]string
	explanations map[RiskLevel]string
	whatNext     string
	whatNextBody string
	locations    []string
}

var translations = map[Language]translation{
	English: {
		progress: "Question 1 of 1",
		question: "How often do you think about your long-term health and taking preventative measures?",
		answers: answerTexts{
			a: "Regularly, I'm proactive about it.",
			b: "Sometimes, when I feel symptoms or I'm reminded.",
			c: "Rarely, I feel healthy and don't see the need.",
		},
		riskLabels: map[RiskLevel]string{RiskLower: "Lower", RiskModerate: "Moderate", RiskHigher: "Higher"},
		explanations: map[RiskLevel]string{
			RiskLower:    "Being proactive about your health is the best way to prevent future issues and is associated with lower risk.",
			RiskModerate: "Reacting to symptoms is common, but preventative care can catch things early. This indicates a moderate risk level.",
			RiskHigher:   "Feeling healthy is great, but many serious conditions have no early symptoms. A lack of preventative thinking may increase risk.",
		},
		whatNext:     "What to do next.",
		whatNextBody: "Take your results to a medical professional. Find a location near you.",
		locations:    []string{"Dorchester", "Jamaica Plain", "Mattapan", "Mission Hill", "Roxbury", "Other Location"},
	},
	Spanish: {
		progress: "Pregunta 1 de 1",
		question: "¿Con qué frecuencia piensa en su salud a largo plazo y en tomar medidas preventivas?",
		answers: answerTexts{
			a: "Regularmente, soy proactivo al respecto.",
			b: "A veces, cuando siento síntomas o me lo recuerdan.",
			c: "Rara vez, me siento saludable y no veo la necesidad.",
		},
		riskLabels: map[RiskLevel]string{RiskLower: "Bajo", RiskModerate: "Moderado", RiskHigher: "Alto"},
		explanations: map[RiskLevel]string{
			RiskLower:    "Ser proactivo con su salud es la mejor manera de prevenir problemas futuros y se asocia con un menor riesgo.",
			RiskModerate: "Reaccionar a los síntomas es común, pero la atención preventiva puede detectar las cosas a tiempo. Esto indica un nivel de riesgo moderado.",
			RiskHigher:   "Sentirse saludable es genial, pero muchas condiciones graves no tienen síntomas tempranos. La falta de pensamiento preventivo puede aumentar el riesgo.",
		},
		whatNext:     "¡Qué hacer a Continuación!",
		whatNextBody: "Lleve sus resultados a un profesional médico. Encuentre una ubicación cerca de usted.",
		locations:    []string{"Dorchester", "Jamaica Plain", "Mattapan", "Mission Hill", "Roxbury", "Otra Ubicación"},
	},
	Chinese: {
		progress: "问题 1 / 1",
		question: "您多久会考虑一次您的长期健康并采取预防措施？",
		answers: answerTexts{
			a: "经常，我对此很主动。",
			b: "有时，当我感觉到症状或被提醒时。",
			c: "很少，我感觉很健康，觉得没必要。",
		},
		riskLabels: map[RiskLevel]string{RiskLower: "较低", RiskModerate: "中等", RiskHigher: "较高"},
		explanations: map[RiskLevel]string{
			RiskLower:    "积极主动地关注您的健康是预防未来问题的最佳方式，并且与较低的风险相关。",
			RiskModerate: "对症状做出反应是常见的，但预防性护理可以及早发现问题。这表明风险水平为中等。",
			RiskHigher:   "感觉健康是件好事，但许多严重疾病早期没有症状。缺乏预防性思维可能会增加风险。",
		},
		whatNext:     "接下来做什么！",
		whatNextBody: "将您的结果带给医疗专业人员。查找您附近的地点。",
		locations:    []string{"多切斯特", "牙买加平原", "马塔潘", "使命山", "罗克斯伯里", "其他地点"},
	},
}
