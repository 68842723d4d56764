package seed

import (
	"fmt"
	"math/rand"
	"strings"
)

var firstNames = []string{
	"Ava", "Noah", "Liam", "Mia", "Olivia", "Ethan", "Lucas", "Ella", "Zoe", "Kai",
	"Ivy", "Leo", "Ezra", "Nora", "Aiden", "Maya", "Sofia", "Mason", "Aria", "Elena",
}

var lastNames = []string{
	"Nguyen", "Johnson", "Garcia", "Patel", "Khan", "Osei", "Martinez", "Kim", "Schmidt", "Silva",
	"Hernandez", "Williams", "Lopez", "Singh", "Brown", "Li", "Chen", "Wilson", "Davis", "Clark",
}

var jobTitles = []string{
	"Frontend Engineer", "Backend Engineer", "Fullstack Developer", "Product Manager",
	"Data Scientist", "ML Engineer", "DevOps Engineer", "QA Analyst", "UI/UX Designer",
	"Technical Writer", "Solutions Architect", "Security Engineer", "Mobile Developer",
	"Growth Manager", "Customer Success Lead", "People Operations Partner", "Support Engineer",
	"Site Reliability Engineer", "Research Scientist", "Hardware Engineer",
}

var jobTags = []string{
	"Remote", "Hybrid", "Onsite", "Contract", "Full-time", "Equity", "Urgent",
	"Diversity", "Graduate", "Leadership", "Staff", "Junior", "Design", "Engineering", "Product",
}

var emailDomains = []string{"example.com", "talentflow.dev", "mail.com", "workmail.co", "hireme.org"}

var phonePrefixes = []string{"202", "303", "415", "512", "617", "718", "917"}

var mentionAuthors = []string{"Alex Rivera", "Priya Desai", "Morgan Lee", "Sam Parker", "Taylor Chen"}

func randomItem[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}

// randomInt returns an integer in [min, max].
func randomInt(rng *rand.Rand, min, max int) int {
	return min + rng.Intn(max-min+1)
}

func randomName(rng *rand.Rand) string {
	return randomItem(rng, firstNames) + " " + randomItem(rng, lastNames)
}

func randomEmail(rng *rand.Rand, name string) string {
	safe := strings.ToLower(name)
	safe = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '.'
	}, safe)
	return safe + "@" + randomItem(rng, emailDomains)
}

func randomTags(rng *rand.Rand) []string {
	count := randomInt(rng, 2, 4)
	seen := make(map[string]bool)
	var tags []string
	for len(tags) < count {
		tag := randomItem(rng, jobTags)
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}

func randomAvatarColor(rng *rand.Rand) string {
	return fmt.Sprintf("hsl(%d, 70%%, 60%%)", randomInt(rng, 0, 360))
}

func randomPhone(rng *rand.Rand) string {
	return fmt.Sprintf("%s-%d-%d",
		randomItem(rng, phonePrefixes),
		randomInt(rng, 100, 999),
		randomInt(rng, 1000, 9999))
}
