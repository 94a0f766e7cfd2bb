package resume

// SampleDocument 返回固定的示例简历，用于"一键填充"。
// 加载示例会整体覆盖当前文档，这是刻意的破坏性操作，不做二次确认。
func SampleDocument() Document {
	return Document{
		PersonalInfo: PersonalInfo{
			FullName: "Jake Ryan",
			Phone:    "+1 (123) 456-7890",
			Email:    "jake@gmail.com",
			LinkedIn: "https://linkedin.com/in/jake",
			GitHub:   "https://github.com/jake",
			Twitter:  "https://x.com/jake",
			Location: "Boston, MA",
		},
		ProfessionalSummary: "Undergraduate student pursuing Computer Science with experience in Java, C++, JavaScript, and Python. Interested in software engineering, web development, and artificial intelligence.",
		Education: []Education{
			{
				ID:        "1",
				Degree:    "Bachelor of Science in Computer Science",
				School:    "Boston University",
				SchoolURL: "https://bu.edu",
				Location:  "Boston, MA",
				StartDate: "Sep 2018",
				EndDate:   "May 2022",
				GPA:       "3.4",
			},
		},
		Experiences: []Experience{
			{
				ID:         "1",
				Title:      "Undergraduate Research Assistant",
				Company:    "Boston University",
				CompanyURL: "https://bu.edu",
				Location:   "Boston, MA",
				StartDate:  "Jun 2020",
				EndDate:    "Present",
				Description: []string{
					"Developed a REST API using FastAPI and PostgreSQL to store data from learning management systems",
					"Developed a full-stack web application using Flask, React, PostgreSQL, and Docker to analyze GitHub data",
					"Explored ways to visualize GitHub collaboration in a classroom setting",
				},
			},
		},
		Projects: []Project{
			{
				ID:           "1",
				Name:         "Gitlytics",
				Technologies: "Python, Flask, React, PostgreSQL, Docker, TravisCI, Digital Ocean",
				LiveURL:      "https://gitlytics.com",
				GitHubURL:    "https://github.com/jake/gitlytics",
				StartDate:    "Jun 2020",
				EndDate:      "Present",
				Description: []string{
					"Developed a full-stack web application used by over 350 students at Boston University",
					"Impacted greatest number of students by creating a platform to analyze the data of any GitHub specification compliance",
				},
			},
		},
		Certifications: []Certification{
			{
				ID:            "1",
				Name:          "AWS Certified Solutions Architect",
				CredentialURL: "https://aws.amazon.com/verification",
			},
		},
		ExtraCurricular: []ExtraCurricular{
			{
				ID:              "1",
				Activity:        "Programming Club",
				Organization:    "Boston University",
				OrganizationURL: "https://bu.edu",
				Role:            "President",
				StartDate:       "Sep 2019",
				EndDate:         "May 2022",
				Description: []string{
					"Led a team of 50+ students in organizing coding competitions and workshops",
					"Increased club membership by 200% through innovative outreach programs",
				},
			},
		},
		Awards: []Award{
			{
				ID:          "1",
				Title:       "Dean's List",
				Issuer:      "Boston University",
				IssuerURL:   "https://bu.edu",
				Date:        "Fall 2020",
				Description: "Achieved GPA of 3.75 or higher for academic excellence",
			},
		},
		Achievements: []Achievement{
			{
				ID:          "1",
				Title:       "Published Research Paper",
				Description: "Co-authored paper on machine learning applications in education",
				Date:        "Dec 2021",
				URL:         "https://example.com/paper",
			},
		},
		TechnicalSkills: TechnicalSkills{
			Languages:  []string{"Java", "Python", "C++", "SQL", "JavaScript", "HTML/CSS", "R"},
			Frameworks: []string{"React", "Node.js", "Flask", "JUnit", "WordPress", "Material-UI", "FastAPI"},
			Tools:      []string{"Git", "Docker", "TravisCI", "Google Cloud Platform", "VS Code", "Visual Studio", "PyCharm"},
			Libraries:  []string{"pandas", "NumPy", "Matplotlib"},
		},
		// 示例数据未提供语言能力条目；区块仍在 SectionOrder 中，预览时因空而隐藏。
		LanguageProficiency: []LanguageProficiency{},
		SectionOrder:        DefaultSectionOrder(),
	}
}
