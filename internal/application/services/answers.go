package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/adityakhanna/shopwise/internal/domain/entities"
)

// FallbackAnswer is returned when no specialist produced a usable result
const FallbackAnswer = "I couldn't find any products matching your criteria. Please try:\n" +
	"- Expanding your budget\n" +
	"- Choosing a different brand\n" +
	"- Exploring other categories\n" +
	"- Asking about specific products\n\n" +
	"Try asking: 'Show me all smartphones' or 'What are the best laptops under ₹1,00,000?'"

// ErrorAnswer is returned when the pipeline itself failed
const ErrorAnswer = "I encountered an error processing your request. " +
	"Please try rephrasing your question or ask about specific products, brands, or categories."

// formatPrice renders a rupee amount with Indian comma grouping
func formatPrice(price float64) string {
	whole := int64(price)
	frac := int64((price-float64(whole))*100 + 0.5)

	s := fmt.Sprintf("%d", whole)
	if len(s) > 3 {
		head := s[:len(s)-3]
		tail := s[len(s)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		s = strings.Join(groups, ",") + "," + tail
	}
	return fmt.Sprintf("₹%s.%02d", s, frac)
}

// FormatCatalogAnswer renders a catalog result to markdown
func FormatCatalogAnswer(result *CatalogResult) string {
	switch result.ResultType {
	case ResultProductDetails:
		return formatProductDetails(result.Detail)
	case ResultCount:
		return formatCountAnswer(result.Count)
	case ResultList:
		return formatListAnswer(result.List)
	default:
		return formatProductList(result.Products)
	}
}

func formatProductDetails(product *entities.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", product.Name)
	fmt.Fprintf(&b, "**Brand:** %s\n", product.Brand)
	fmt.Fprintf(&b, "**Category:** %s\n", product.Category)
	fmt.Fprintf(&b, "**Price:** %s\n\n", formatPrice(product.Price))

	b.WriteString("## Specifications\n\n")
	if len(product.Specs) > 0 {
		names := make([]string, 0, len(product.Specs))
		for name := range product.Specs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "- **%s:** %s\n", name, product.Specs[name])
		}
	} else {
		b.WriteString("*Specifications not available. Please check the manufacturer's website for detailed specs.*\n")
	}
	b.WriteString("\n")

	if len(product.Reviews) > 0 {
		reviews := product.Reviews
		if len(reviews) > 3 {
			reviews = reviews[:3]
		}
		var sum float64
		for _, r := range reviews {
			sum += r.Rating
		}

		b.WriteString("## Customer Reviews\n\n")
		fmt.Fprintf(&b, "**Average Rating:** %.1f/5 (%d reviews)\n\n", sum/float64(len(reviews)), len(reviews))
		for _, r := range reviews {
			fmt.Fprintf(&b, "- **%.0f/5:** %q\n", r.Rating, truncate(r.Text, 150))
		}
		b.WriteString("\n")
	}

	b.WriteString("**Need more help?**\n")
	b.WriteString("- Compare this product with alternatives\n")
	b.WriteString("- Read detailed customer reviews\n")
	b.WriteString("- Filter similar products by your budget\n")

	return b.String()
}

func formatCountAnswer(count *CountResult) string {
	if count == nil {
		return "No count available."
	}

	var b strings.Builder
	switch count.Type {
	case "brand_count":
		if count.Category != "" {
			fmt.Fprintf(&b, "**We have %d brands** offering %s:\n\n", count.Count, strings.ToLower(count.Category))
		} else {
			fmt.Fprintf(&b, "**We have %d brands** available:\n\n", count.Count)
		}
		for _, brand := range count.Brands {
			fmt.Fprintf(&b, "- %s\n", brand)
		}
		fmt.Fprintf(&b, "\n*You can browse products from any of these %d brands!*", count.Count)

	case "category_count":
		fmt.Fprintf(&b, "**We have %d product categories** available:\n\n", count.Count)
		for _, category := range count.Categories {
			fmt.Fprintf(&b, "- %s\n", category)
		}
		b.WriteString("\n*Explore any category to find the perfect product for you!*")

	case "product_count":
		fmt.Fprintf(&b, "**We have %d %s** in our catalog.\n\n", count.Count, strings.ToLower(count.Category))
		if len(count.Products) > 0 {
			b.WriteString("Here are some examples:\n\n")
			samples := count.Products
			if len(samples) > 5 {
				samples = samples[:5]
			}
			for i, p := range samples {
				fmt.Fprintf(&b, "%d. **%s** by %s - %s\n", i+1, p.Name, p.Brand, formatPrice(p.Price))
			}
		}

	default:
		fmt.Fprintf(&b, "Found %d items.", count.Count)
	}
	return b.String()
}

func formatListAnswer(list *ListResult) string {
	var b strings.Builder
	if len(list.Brands) > 0 {
		fmt.Fprintf(&b, "**Available Brands (%d):**\n\n", len(list.Brands))
		for _, brand := range list.Brands {
			fmt.Fprintf(&b, "- %s\n", brand)
		}
	} else {
		fmt.Fprintf(&b, "**Product Categories (%d):**\n\n", len(list.Categories))
		for _, category := range list.Categories {
			fmt.Fprintf(&b, "- %s\n", category)
		}
	}
	return b.String()
}

func formatProductList(products []*entities.Product) string {
	if len(products) == 0 {
		return "No products found matching your criteria."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Found %d products:**\n\n", len(products))

	shown := products
	if len(shown) > 10 {
		shown = shown[:10]
	}
	for i, p := range shown {
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, p.Name)
		fmt.Fprintf(&b, "   - Brand: %s\n", p.Brand)
		fmt.Fprintf(&b, "   - Category: %s\n", p.Category)
		fmt.Fprintf(&b, "   - Price: **%s**\n\n", formatPrice(p.Price))
	}

	if len(products) > 10 {
		fmt.Fprintf(&b, "*...and %d more products*\n\n", len(products)-10)
	}

	b.WriteString("*Need help choosing? Ask me to compare specific products or filter by your budget!*")
	return b.String()
}

// FormatFilterAnswer renders a filter result, echoing the attempted bounds
// when nothing matched
func FormatFilterAnswer(result *FilterResult) string {
	if len(result.Products) == 0 {
		return fmt.Sprintf(
			"No products found within %s. Try expanding your budget or exploring different categories.",
			result.Constraints.PriceRangeString(),
		)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Found %d products within your constraints:**\n\n", len(result.Products))

	shown := result.Products
	if len(shown) > 10 {
		shown = shown[:10]
	}
	for i, p := range shown {
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, p.Name)
		fmt.Fprintf(&b, "   - Brand: %s\n", p.Brand)
		fmt.Fprintf(&b, "   - Category: %s\n", p.Category)
		fmt.Fprintf(&b, "   - Price: **%s**\n\n", formatPrice(p.Price))
	}
	if len(result.Products) > 10 {
		fmt.Fprintf(&b, "*...and %d more products within your budget*\n\n", len(result.Products)-10)
	}

	cheapest := result.Products[0].Price
	costliest := result.Products[0].Price
	for _, p := range result.Products {
		if p.Price < cheapest {
			cheapest = p.Price
		}
		if p.Price > costliest {
			costliest = p.Price
		}
	}

	fmt.Fprintf(&b, "**Summary:** Prices range from %s to %s in your selection. ", formatPrice(cheapest), formatPrice(costliest))
	switch {
	case len(result.Products) > 5:
		b.WriteString("You have plenty of options to choose from! ")
	case len(result.Products) <= 2:
		b.WriteString("Limited options in this range - consider expanding your budget. ")
	}
	b.WriteString("Compare specific products or ask about reviews to make your final decision!")

	return b.String()
}

// FormatReviewAnswer renders review items with rating-band summaries
func FormatReviewAnswer(result *ReviewResult) string {
	if len(result.Items) == 0 {
		return "No reviews found matching your criteria. Try asking about specific products or brands."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Found %d product(s) with relevant reviews:**\n\n", len(result.Items))

	var ratingSum float64
	for i, item := range result.Items {
		fmt.Fprintf(&b, "### %d. %s\n", i+1, item.Product.Name)
		fmt.Fprintf(&b, "**Brand:** %s | **Price:** %s\n\n", item.Product.Brand, formatPrice(item.Product.Price))
		fmt.Fprintf(&b, "**Customer Rating:** %.1f/5 (%d reviews)\n\n", item.Sentiment.AverageRating, item.Sentiment.ReviewCount)
		ratingSum += item.Sentiment.AverageRating

		if len(item.RelevantReviews) > 0 {
			b.WriteString("**What customers are saying:**\n")
			for _, review := range item.RelevantReviews {
				fmt.Fprintf(&b, "  - %q (%.0f/5)\n", truncate(review.Text, 150), review.Rating)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n**Summary:** ")
	if len(result.Items) == 1 {
		item := result.Items[0]
		rating := item.Sentiment.AverageRating
		name := item.Product.Name
		switch {
		case rating >= 4.5:
			fmt.Fprintf(&b, "The %s has excellent customer satisfaction with a %.1f/5 rating. ", name, rating)
		case rating >= 4.0:
			fmt.Fprintf(&b, "The %s is well-received by customers with a %.1f/5 rating. ", name, rating)
		case rating >= 3.5:
			fmt.Fprintf(&b, "The %s has mixed reviews (%.1f/5) - check specific features that matter to you. ", name, rating)
		default:
			fmt.Fprintf(&b, "The %s has lower ratings (%.1f/5) - consider alternatives or check recent reviews. ", name, rating)
		}
	} else {
		avg := ratingSum / float64(len(result.Items))
		switch {
		case avg >= 4.5:
			b.WriteString("These products have excellent customer satisfaction with consistently high ratings. ")
		case avg >= 4.0:
			b.WriteString("These products are well-received by customers with good overall ratings. ")
		case avg >= 3.5:
			b.WriteString("These products have mixed reviews - check specific features that matter to you. ")
		default:
			b.WriteString("Customer feedback suggests considering alternatives or checking recent reviews for improvements. ")
		}
	}
	b.WriteString("Read detailed reviews to understand how each product performs in real-world use!")

	return b.String()
}

// FormatCompareAnswer renders the comparison table, winners, and
// recommendation
func FormatCompareAnswer(result *CompareResult) string {
	if result.Comparison == nil || len(result.Comparison.Products) == 0 {
		return "Unable to compare products. Please specify product names clearly."
	}

	comparison := result.Comparison
	recommendation := result.Recommendation

	var b strings.Builder
	b.WriteString("## Product Comparison\n\n")
	b.WriteString("| Product | Brand | Price | Rating | Reviews |\n")
	b.WriteString("|---------|-------|-------|--------|---------|\n")

	for _, p := range comparison.Products {
		name := p.Name
		if recommendation != nil && p.ID == recommendation.ProductID {
			name = "**" + name + "**"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %.1f/5 | %d |\n",
			name, p.Brand, formatPrice(p.Price), p.AverageRating, p.ReviewCount)
	}
	b.WriteString("\n")

	if len(comparison.SpecComparison) > 0 {
		b.WriteString("### Specifications\n\n")
		specNames := make([]string, 0, len(comparison.SpecComparison))
		for name := range comparison.SpecComparison {
			specNames = append(specNames, name)
		}
		sort.Strings(specNames)
		if len(specNames) > 5 {
			specNames = specNames[:5]
		}
		for _, specName := range specNames {
			fmt.Fprintf(&b, "**%s:**\n", specName)
			for _, p := range comparison.Products {
				fmt.Fprintf(&b, "  - %s: %s\n", p.Name, comparison.SpecComparison[specName][p.Name])
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("### Winners\n\n")
	for _, p := range comparison.Products {
		if p.ID == comparison.PriceWinner {
			fmt.Fprintf(&b, "- **Best Price**: %s (%s)\n", p.Name, formatPrice(p.Price))
		}
	}
	for _, p := range comparison.Products {
		if comparison.RatingWinner != "" && p.ID == comparison.RatingWinner {
			fmt.Fprintf(&b, "- **Highest Rated**: %s (%.1f/5)\n", p.Name, p.AverageRating)
		}
	}
	b.WriteString("\n")

	if recommendation != nil {
		b.WriteString("### Our Recommendation\n\n")
		fmt.Fprintf(&b, "**%s**\n\n", recommendation.ProductName)
		fmt.Fprintf(&b, "*%s*\n\n", recommendation.Reason)

		b.WriteString("**Summary:** ")
		switch recommendation.ProductID {
		case comparison.PriceWinner:
			fmt.Fprintf(&b, "The %s offers the best value for money with competitive features. ", recommendation.ProductName)
		case comparison.RatingWinner:
			fmt.Fprintf(&b, "The %s has the highest customer satisfaction ratings. ", recommendation.ProductName)
		default:
			fmt.Fprintf(&b, "The %s provides the best overall balance of price and quality. ", recommendation.ProductName)
		}
		b.WriteString("Consider your budget and specific needs before making your final decision!")
	}

	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
