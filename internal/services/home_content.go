package services

type HeadlineStat struct {
	Label string
	Value string
	Delta string
	// Rising is true when the delta is an increase.
	Rising bool
}

type RiskFactor struct {
	Name   string
	Detail string
}

type HomeContent struct {
	Features     []string
	Statistics   []HeadlineStat
	Tips         []string
	RiskFactors  []RiskFactor
	WarningSigns []string
	Disclaimer   string
}

var homeContent = HomeContent{
	Features: []string{
		"Real-time prediction using Machine Learning",
		"Data visualization and analysis",
		"User feedback system",
		"Interactive health monitoring",
		"Personalized health recommendations",
	},
	Statistics: []HeadlineStat{
		{Label: "Annual Deaths", Value: "17.9M", Delta: "2.1%", Rising: true},
		{Label: "Risk Factor Prevalence", Value: "85%", Delta: "1.5%", Rising: true},
		{Label: "Preventable Cases", Value: "80%", Delta: "0.5%", Rising: false},
	},
	Tips: []string{
		"Exercise for at least 30 minutes daily",
		"Eat a balanced diet rich in fruits and vegetables",
		"Stay hydrated - drink 8 glasses of water daily",
		"Get 7-8 hours of quality sleep",
		"Practice stress management techniques",
		"Avoid smoking and limit alcohol consumption",
		"Regular health check-ups are essential",
		"Stay mentally active and socially connected",
	},
	RiskFactors: []RiskFactor{
		{Name: "High Blood Pressure", Detail: "Affects 1 in 3 adults"},
		{Name: "High Cholesterol", Detail: "Leading cause of heart disease"},
		{Name: "Diabetes", Detail: "Doubles heart disease risk"},
		{Name: "Obesity", Detail: "Increases risk by 40%"},
		{Name: "Smoking", Detail: "Major preventable cause"},
		{Name: "Physical Inactivity", Detail: "Affects 1 in 4 adults"},
	},
	WarningSigns: []string{
		"Severe chest pain or pressure",
		"Shortness of breath",
		"Pain in arms, back, neck, or jaw",
		"Cold sweats",
		"Nausea or lightheadedness",
	},
	Disclaimer: "This app is for informational purposes only. Always consult with healthcare professionals for medical advice and diagnosis. In case of emergency, call your local emergency services immediately.",
}

// Home returns the static content of the landing view.
func Home() HomeContent {
	return homeContent
}
