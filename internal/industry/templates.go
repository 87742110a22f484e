package industry

import "github.com/nikhilbhutani/sitehost/internal/models"

var templates = [count]models.IndustryTemplate{
	MobileDetailing: {
		Industry: "mobile-detailing",
		Brand:    "Mobile Detailing Hub",
		Logo: models.Logo{
			URL:     "/mobile-detailing/icons/logo.webp",
			Alt:     "Mobile Detailing Hub logo",
			Favicon: "/mobile-detailing/icons/favicon.ico",
		},
		Hero: models.Hero{
			Title:    "Professional Mobile Detailing",
			Subtitle: "We come to you. Showroom shine at your home or office.",
			CTA:      "Get a Free Quote",
			Image:    "/mobile-detailing/hero/hero-1.webp",
		},
		SEO: models.SEO{
			Title:       "Mobile Detailing | Auto, Boat & RV Detailing at Your Door",
			Description: "Interior and exterior detailing, ceramic coating and paint correction delivered to your driveway.",
			Keywords:    []string{"mobile detailing", "car detailing", "ceramic coating", "paint correction"},
			OGImage:     "/mobile-detailing/og.webp",
		},
		Services: []models.Service{
			{Slug: "auto", Title: "Auto Detailing", Description: "Full interior and exterior detail for cars, trucks and SUVs.", Icon: "car"},
			{Slug: "marine", Title: "Marine Detailing", Description: "Hull, deck and interior care for boats of every size.", Icon: "anchor"},
			{Slug: "rv", Title: "RV Detailing", Description: "Wash, wax and oxidation removal for motorhomes and trailers.", Icon: "truck"},
			{Slug: "ceramic", Title: "Ceramic Coating", Description: "Long-lasting protection with a deep, glossy finish.", Icon: "shield"},
		},
		FAQs: []models.FAQ{
			{ID: "water-power", Question: "Do you need access to water or power?", Answer: "No. Our vans carry their own water and power."},
			{ID: "duration", Question: "How long does a full detail take?", Answer: "Most full details take between two and four hours."},
			{ID: "weather", Question: "What happens if it rains?", Answer: "We will reschedule at no cost or work under cover where available."},
		},
		ThemeName: "ocean",
		Contact: models.Contact{
			BusinessName: "Mobile Detailing Hub",
			Phone:        "(555) 123-4567",
			Email:        "contact@example.com",
			City:         "Demo City",
			State:        "ST",
		},
	},
	MaidService: {
		Industry: "maid-service",
		Brand:    "Maid Service Pros",
		Logo: models.Logo{
			URL:     "/maid-service/icons/logo.webp",
			Alt:     "Maid Service Pros logo",
			Favicon: "/maid-service/icons/favicon.ico",
		},
		Hero: models.Hero{
			Title:    "A Spotless Home, Every Time",
			Subtitle: "Trusted, insured cleaners for weekly, monthly and move-out cleans.",
			CTA:      "Book a Cleaning",
			Image:    "/maid-service/hero/hero-1.webp",
		},
		SEO: models.SEO{
			Title:       "House Cleaning & Maid Service",
			Description: "Recurring house cleaning, deep cleans and move-in/move-out service from vetted local cleaners.",
			Keywords:    []string{"maid service", "house cleaning", "deep cleaning", "move out cleaning"},
			OGImage:     "/maid-service/og.webp",
		},
		Services: []models.Service{
			{Slug: "standard", Title: "Standard Clean", Description: "Kitchens, bathrooms, dusting and floors.", Icon: "sparkles"},
			{Slug: "deep", Title: "Deep Clean", Description: "Baseboards, inside appliances and detailed scrubbing.", Icon: "spray-can"},
			{Slug: "move-out", Title: "Move-In / Move-Out", Description: "Empty-home cleaning ready for inspection.", Icon: "box"},
		},
		FAQs: []models.FAQ{
			{ID: "supplies", Question: "Do I need to provide supplies?", Answer: "No. We bring all supplies and equipment."},
			{ID: "home", Question: "Do I need to be home?", Answer: "Not at all. Many clients leave a key or door code."},
			{ID: "insured", Question: "Are your cleaners insured?", Answer: "Yes. Every cleaner is background-checked and insured."},
		},
		ThemeName: "fresh",
		Contact: models.Contact{
			BusinessName: "Maid Service Pros",
			Phone:        "(555) 123-4567",
			Email:        "contact@example.com",
			City:         "Demo City",
			State:        "ST",
		},
	},
	LawnCare: {
		Industry: "lawncare",
		Brand:    "Lawn Care Co",
		Logo: models.Logo{
			URL:     "/lawncare/icons/logo.webp",
			Alt:     "Lawn Care Co logo",
			Favicon: "/lawncare/icons/favicon.ico",
		},
		Hero: models.Hero{
			Title:    "Greener Lawns, Less Work",
			Subtitle: "Mowing, edging, fertilization and seasonal cleanups.",
			CTA:      "Get a Free Estimate",
			Image:    "/lawncare/hero/hero-1.webp",
		},
		SEO: models.SEO{
			Title:       "Lawn Care & Landscaping Services",
			Description: "Weekly mowing, fertilization programs and yard cleanups from a local lawn care crew.",
			Keywords:    []string{"lawn care", "lawn mowing", "landscaping", "yard cleanup"},
			OGImage:     "/lawncare/og.webp",
		},
		Services: []models.Service{
			{Slug: "mowing", Title: "Mowing & Edging", Description: "Clean cuts and crisp edges on a weekly or bi-weekly schedule.", Icon: "scissors"},
			{Slug: "fertilization", Title: "Fertilization", Description: "Seasonal feeding and weed control programs.", Icon: "leaf"},
			{Slug: "cleanup", Title: "Seasonal Cleanup", Description: "Leaf removal, trimming and bed refresh.", Icon: "trash"},
		},
		FAQs: []models.FAQ{
			{ID: "contract", Question: "Do I have to sign a contract?", Answer: "No. Service is month to month."},
			{ID: "clippings", Question: "Do you bag clippings?", Answer: "We mulch by default and bag on request."},
			{ID: "rain", Question: "What if it rains on my service day?", Answer: "We move your visit to the next dry day."},
		},
		ThemeName: "meadow",
		Contact: models.Contact{
			BusinessName: "Lawn Care Co",
			Phone:        "(555) 123-4567",
			Email:        "contact@example.com",
			City:         "Demo City",
			State:        "ST",
		},
	},
	PetGrooming: {
		Industry: "pet-grooming",
		Brand:    "Pet Grooming Studio",
		Logo: models.Logo{
			URL:     "/pet-grooming/icons/logo.webp",
			Alt:     "Pet Grooming Studio logo",
			Favicon: "/pet-grooming/icons/favicon.ico",
		},
		Hero: models.Hero{
			Title:    "Happy Pets, Fresh Looks",
			Subtitle: "Gentle, fear-free grooming for dogs and cats.",
			CTA:      "Book a Groom",
			Image:    "/pet-grooming/hero/hero-1.webp",
		},
		SEO: models.SEO{
			Title:       "Dog & Cat Grooming",
			Description: "Baths, haircuts, nail trims and de-shedding treatments from certified groomers.",
			Keywords:    []string{"pet grooming", "dog grooming", "cat grooming", "nail trim"},
			OGImage:     "/pet-grooming/og.webp",
		},
		Services: []models.Service{
			{Slug: "bath", Title: "Bath & Brush", Description: "Shampoo, blow-dry, brush-out and ear cleaning.", Icon: "droplet"},
			{Slug: "full-groom", Title: "Full Groom", Description: "Bath plus breed-appropriate haircut.", Icon: "scissors"},
			{Slug: "nails", Title: "Nail Trim", Description: "Quick trims and grinding between full grooms.", Icon: "paw"},
		},
		FAQs: []models.FAQ{
			{ID: "vaccines", Question: "Which vaccinations are required?", Answer: "Rabies is required; bordetella is recommended."},
			{ID: "duration", Question: "How long will my pet be there?", Answer: "Most grooms take two to three hours."},
			{ID: "anxious", Question: "Can you handle anxious pets?", Answer: "Yes. We use low-stress handling and take breaks as needed."},
		},
		ThemeName: "playful",
		Contact: models.Contact{
			BusinessName: "Pet Grooming Studio",
			Phone:        "(555) 123-4567",
			Email:        "contact@example.com",
			City:         "Demo City",
			State:        "ST",
		},
	},
	Barber: {
		Industry: "barber",
		Brand:    "Barber Shop",
		Logo: models.Logo{
			URL:     "/barber/icons/logo.webp",
			Alt:     "Barber Shop logo",
			Favicon: "/barber/icons/favicon.ico",
		},
		Hero: models.Hero{
			Title:    "Sharp Cuts, Classic Shaves",
			Subtitle: "Walk-ins welcome. Appointments recommended.",
			CTA:      "Book a Chair",
			Image:    "/barber/hero/hero-1.webp",
		},
		SEO: models.SEO{
			Title:       "Barber Shop | Haircuts, Fades & Hot Towel Shaves",
			Description: "Precision haircuts, fades, beard trims and hot towel shaves.",
			Keywords:    []string{"barber", "haircut", "fade", "beard trim"},
			OGImage:     "/barber/og.webp",
		},
		Services: []models.Service{
			{Slug: "haircut", Title: "Haircut", Description: "Classic and modern cuts finished with a hot towel.", Icon: "scissors"},
			{Slug: "beard", Title: "Beard Trim", Description: "Shape-up, line-up and conditioning.", Icon: "user"},
			{Slug: "shave", Title: "Hot Towel Shave", Description: "Straight razor shave with pre and post treatment.", Icon: "droplet"},
		},
		FAQs: []models.FAQ{
			{ID: "walk-ins", Question: "Do you take walk-ins?", Answer: "Yes, when a chair is open. Booking guarantees your time."},
			{ID: "payment", Question: "What payment methods do you accept?", Answer: "Cash and all major cards."},
		},
		ThemeName: "classic",
		Contact: models.Contact{
			BusinessName: "Barber Shop",
			Phone:        "(555) 123-4567",
			Email:        "contact@example.com",
			City:         "Demo City",
			State:        "ST",
		},
	},
}
