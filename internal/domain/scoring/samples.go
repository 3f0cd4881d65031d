package scoring

// Sample is one labeled training résumé.
type Sample struct {
	Text  string
	Score float64
}

// DefaultSamples is the built-in training set fitted at startup.
func DefaultSamples() []Sample {
	return []Sample{
		{
			Text:  "Senior software engineer with 8 years experience in python, java and sql. Built machine learning pipelines on aws with docker and kubernetes. Led a team of six, strong leadership, communication and teamwork. Delivered 5 projects end to end, owned project management and time management. Master degree in computer science, bachelor in mathematics.",
			Score: 95,
		},
		{
			Text:  "Full stack developer, 6 years. javascript, react, angular, html, css, git, agile and devops practices. Problem solving and analytical mindset, teamwork and communication. Shipped 4 projects including an open source project. Bachelor of engineering.",
			Score: 88,
		},
		{
			Text:  "Data scientist with phd in statistics. python, sql, machine learning, aws. 4 years of research and 2 years in industry. Analytical, problem solving, communication. Three projects published.",
			Score: 85,
		},
		{
			Text:  "Backend engineer, 5 years experience with java, sql, docker, kubernetes and git. Worked in agile teams with devops culture. Teamwork and leadership. Two projects in payments. Bachelor degree.",
			Score: 80,
		},
		{
			Text:  "Frontend developer, 3 years. html, css, javascript and react. Communication and teamwork. One project portfolio site. Diploma in web design.",
			Score: 65,
		},
		{
			Text:  "Junior developer with 1 year experience in python and git. Completed 2 projects during internship. Bachelor degree. Good communication.",
			Score: 60,
		},
		{
			Text:  "IT support specialist, 4 years. sql and html basics. Teamwork. Diploma in information technology.",
			Score: 50,
		},
		{
			Text:  "Recent graduate, bachelor in business. Communication skills, leadership in student club. Interested in python.",
			Score: 45,
		},
		{
			Text:  "Sales associate for 6 months. Friendly and hard working. Looking for new opportunities.",
			Score: 30,
		},
		{
			Text:  "Hobbyist who likes computers. Some html. Available immediately.",
			Score: 25,
		},
		{
			Text:  "Warehouse worker, 2 years. Reliable.",
			Score: 20,
		},
		{
			Text:  "DevOps engineer with 7 years in aws, docker, kubernetes, git and python. Agile delivery, leadership, problem solving, time management. Led 3 projects migrating to the cloud. Master degree.",
			Score: 90,
		},
	}
}
