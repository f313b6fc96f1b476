package services

const PredictionDisclaimer = "This prediction is based on machine learning algorithms and should not be considered as a definitive medical diagnosis. Always consult with healthcare professionals for proper medical advice and diagnosis."

type predictionAdvice struct {
	headline string
	heading  string
	items    []string
}

var positiveAdvice = predictionAdvice{
	headline: "Positive for Heart Disease",
	heading:  "Recommendations",
	items: []string{
		"Schedule an appointment with a cardiologist",
		"Monitor your blood pressure and heart rate regularly",
		"Maintain a heart-healthy diet",
		"Exercise regularly under medical supervision",
		"Take prescribed medications as directed",
		"Reduce salt intake",
		"Increase physical activity",
		"Manage stress levels",
		"Quit smoking if applicable",
		"Limit alcohol consumption",
	},
}

var negativeAdvice = predictionAdvice{
	headline: "No Heart Disease",
	heading:  "Preventive Measures",
	items: []string{
		"Continue regular health check-ups",
		"Maintain a healthy lifestyle",
		"Exercise regularly",
		"Eat a balanced diet",
		"Manage stress levels",
		"Monitor blood pressure regularly",
		"Maintain healthy cholesterol levels",
		"Stay physically active",
		"Get adequate sleep",
		"Practice stress management",
	},
}

func adviceFor(label int) predictionAdvice {
	if label == 1 {
		return positiveAdvice
	}
	return negativeAdvice
}
