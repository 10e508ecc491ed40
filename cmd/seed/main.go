// Command seed loads sample destinations and FAQs into the database.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"yatra/internal/infra"
	"yatra/internal/models/db_models"
	"yatra/internal/repositories"
	"yatra/internal/services"
	"yatra/pkg/config"
	"yatra/pkg/logger"
	"yatra/pkg/utils"
)

func main() {
	skipEmbeddings := flag.Bool("skip-embeddings", false, "do not compute destination embeddings")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		zap.S().Fatalw("load config", "error", err)
	}
	log, err := logger.New(cfg.Environment)
	if err != nil {
		zap.S().Fatalw("init logger", "error", err)
	}
	defer log.Sync()

	if err := run(cfg, log, *skipEmbeddings); err != nil {
		log.Error("seed failed", "error", err)
		os.Exit(1)
	}
	log.Info("seed complete")
}

func run(cfg config.Config, log *logger.Logger, skipEmbeddings bool) error {
	db, err := infra.InitPostgresql(cfg, log)
	if err != nil {
		return err
	}
	defer infra.ClosePostgresql(db, log)
	if err := infra.Migrate(db); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var embedded services.EmbededServiceInterface
	if !skipEmbeddings {
		client, err := utils.NewAIClient(cfg.AI)
		if err != nil {
			return err
		}
		if client != nil {
			defer client.Close()
		}
		embedded = services.NewEmbededService(repositories.NewDestinationEmbeddingRepository(db), client, log)
	}

	destinations := repositories.NewDestinationRepository(db)
	for i := range sampleDestinations {
		d := sampleDestinations[i]
		d.Slug = services.Slugify(d.Name)
		d.Status = db_models.DestinationPublished
		d.State = "Jharkhand"
		if err := destinations.UpsertBySlug(ctx, &d); err != nil {
			return err
		}
		if embedded != nil {
			if err := embedded.StoreDestination(ctx, &d); err != nil {
				log.Warn("embedding failed", "destination", d.Name, "error", err)
			}
		}
		log.Info("destination seeded", "slug", d.Slug)
	}

	faqs := repositories.NewFAQRepository(db)
	for i := range sampleFAQs {
		f := sampleFAQs[i]
		f.IsActive = true
		if f.Language == "" {
			f.Language = "en"
		}
		if err := faqs.Upsert(ctx, &f); err != nil {
			return err
		}
	}
	log.Info("faqs seeded", "count", len(sampleFAQs))
	return nil
}

var sampleDestinations = []db_models.Destination{
	{
		Name:               "Hundru Falls",
		ShortDescription:   "A 98 m waterfall on the Subarnarekha river near Ranchi.",
		Description:        "Hundru Falls drops 98 metres where the Subarnarekha leaves the Ranchi plateau. The pools at the base are popular for picnics after the monsoon.",
		Category:           "waterfall",
		District:           "Ranchi",
		Latitude:           23.4509,
		Longitude:          85.6672,
		Tags:               pq.StringArray{"waterfalls", "nature", "photography", "trekking"},
		Facilities:         pq.StringArray{"parking", "food stalls", "guides"},
		BestTimeToVisit:    pq.StringArray{"October", "November", "December", "January", "February"},
		EntryFeeIndian:     20,
		EntryFeeForeign:    100,
		Timings:            "06:00-17:30",
		Rating:             4.5,
		ReviewCount:        1240,
		Featured:           true,
		TribalSignificance: "The surrounding villages are home to Munda communities.",
	},
	{
		Name:             "Dassam Falls",
		ShortDescription: "The Kanchi river falls 44 m over a rock amphitheatre.",
		Description:      "Dassam Falls is a natural cascade on the Kanchi, a tributary of the Subarnarekha, about 40 km from Ranchi.",
		Category:         "waterfall",
		District:         "Ranchi",
		Latitude:         23.1420,
		Longitude:        85.4660,
		Tags:             pq.StringArray{"waterfalls", "nature", "photography"},
		Facilities:       pq.StringArray{"parking", "viewpoint"},
		BestTimeToVisit:  pq.StringArray{"September", "October", "November"},
		EntryFeeIndian:   20,
		Timings:          "06:00-17:00",
		Rating:           4.3,
		ReviewCount:      860,
	},
	{
		Name:               "Netarhat",
		ShortDescription:   "The Queen of Chotanagpur, known for sunrise and sunset points.",
		Description:        "Netarhat is a hill station at about 1,100 m with pine forests, Magnolia Point and Upper Ghaghri falls.",
		Category:           "hill-station",
		District:           "Latehar",
		Latitude:           23.4785,
		Longitude:          84.2661,
		Tags:               pq.StringArray{"hills", "nature", "photography", "trekking"},
		Facilities:         pq.StringArray{"hotels", "guides", "parking"},
		BestTimeToVisit:    pq.StringArray{"October", "November", "December", "January", "February", "March"},
		Rating:             4.6,
		ReviewCount:        980,
		Featured:           true,
		TribalSignificance: "Asur and Oraon villages surround the plateau.",
	},
	{
		Name:             "Betla National Park",
		ShortDescription: "Tigers, elephants and the ruins of Palamu forts.",
		Description:      "Betla lies in the Palamu Tiger Reserve and offers jeep and elephant safaris through sal forest.",
		Category:         "wildlife",
		District:         "Latehar",
		Latitude:         23.8870,
		Longitude:        84.1910,
		Tags:             pq.StringArray{"wildlife", "nature", "adventure", "history"},
		Facilities:       pq.StringArray{"safari", "forest rest house", "guides"},
		BestTimeToVisit:  pq.StringArray{"November", "December", "January", "February", "March"},
		EntryFeeIndian:   100,
		EntryFeeForeign:  500,
		Timings:          "06:00-10:00, 14:00-17:00",
		Rating:           4.4,
		ReviewCount:      720,
		Featured:         true,
	},
	{
		Name:               "Baba Baidyanath Dham",
		ShortDescription:   "One of the twelve Jyotirlingas.",
		Description:        "The temple complex in Deoghar draws millions of pilgrims during the Shravani Mela.",
		Category:           "religious",
		District:           "Deoghar",
		Latitude:           24.4925,
		Longitude:          86.7000,
		Tags:               pq.StringArray{"temples", "spiritual", "culture", "history"},
		Facilities:         pq.StringArray{"hotels", "food", "parking"},
		BestTimeToVisit:    pq.StringArray{"July", "August", "October", "November"},
		Timings:            "04:00-21:00",
		Rating:             4.7,
		ReviewCount:        3100,
		Featured:           true,
		TribalSignificance: "Santhal communities join the annual fairs around the town.",
	},
	{
		Name:             "Patratu Valley",
		ShortDescription: "Hairpin bends above the Patratu dam.",
		Description:      "A scenic drive with viewpoints over the reservoir and boating at the lake resort.",
		Category:         "valley",
		District:         "Ramgarh",
		Latitude:         23.6250,
		Longitude:        85.2880,
		Tags:             pq.StringArray{"nature", "photography", "lakes", "adventure"},
		Facilities:       pq.StringArray{"boating", "resort", "parking"},
		BestTimeToVisit:  pq.StringArray{"October", "November", "December", "January", "February"},
		Rating:           4.2,
		ReviewCount:      540,
	},
	{
		Name:             "Jagannath Temple Ranchi",
		ShortDescription: "A 17th century temple on a hillock modelled on Puri.",
		Description:      "Built in 1691 by Thakur Ani Nath Shahdeo, the temple hosts a Rath Yatra every Ashadha.",
		Category:         "religious",
		District:         "Ranchi",
		Latitude:         23.3170,
		Longitude:        85.2800,
		Tags:             pq.StringArray{"temples", "spiritual", "history", "festivals"},
		Facilities:       pq.StringArray{"parking"},
		Timings:          "05:00-20:00",
		Rating:           4.4,
		ReviewCount:      860,
	},
	{
		Name:             "Dalma Wildlife Sanctuary",
		ShortDescription: "Elephant country in the Dalma hills above Jamshedpur.",
		Description:      "The sanctuary covers 193 sq km of dry deciduous forest with trails to the Dalma peak.",
		Category:         "wildlife",
		District:         "East Singhbhum",
		Latitude:         22.8800,
		Longitude:        86.2000,
		Tags:             pq.StringArray{"wildlife", "trekking", "nature"},
		Facilities:       pq.StringArray{"forest rest house", "guides"},
		BestTimeToVisit:  pq.StringArray{"November", "December", "January", "February"},
		EntryFeeIndian:   50,
		Rating:           4.1,
		ReviewCount:      410,
	},
}

var sampleFAQs = []db_models.FAQ{
	{
		Question: "What is the best time to visit Jharkhand?",
		Answer:   "October to March is the most pleasant season. Waterfalls are at their fullest just after the monsoon in September and October. Avoid July to September for long road trips.",
		Category: "general",
		Keywords: pq.StringArray{"best", "time", "visit", "season", "weather", "when"},
		Priority: 5,
	},
	{
		Question: "How do I reach Ranchi?",
		Answer:   "Birsa Munda Airport connects Ranchi to Delhi, Mumbai, Kolkata and Bengaluru. Ranchi and Hatia railway stations have daily trains from most metros.",
		Category: "travel",
		Keywords: pq.StringArray{"reach", "ranchi", "airport", "train", "flight", "how"},
		Priority: 4,
	},
	{
		Question: "Do I need a permit to visit tribal villages?",
		Answer:   "No permit is required, but please visit with a local guide, ask before taking photographs and respect sacred groves (sarnas).",
		Category: "culture",
		Keywords: pq.StringArray{"permit", "tribal", "village", "villages", "photography"},
		Priority: 3,
	},
	{
		Question: "How can I cancel or change a booking?",
		Answer:   "Booking changes are handled by our support agents. Ask in this chat and we will connect you.",
		Category: "booking",
		Keywords: pq.StringArray{"cancel", "change", "booking", "modify"},
		Priority: 2,
	},
	{
		Question: "What local food should I try?",
		Answer:   "Try litti-chokha, dhuska with aloo curry, rugra mushrooms in the monsoon, and handia is a traditional rice beer served in villages.",
		Category: "food",
		Keywords: pq.StringArray{"food", "eat", "cuisine", "dish", "local"},
		Priority: 2,
	},
	{
		Question: "झारखंड घूमने का सबसे अच्छा समय कौन सा है?",
		Answer:   "अक्टूबर से मार्च तक का मौसम सबसे सुहावना होता है।",
		Category: "general",
		Language: "hi",
		Keywords: pq.StringArray{"समय", "मौसम", "घूमने"},
		Priority: 5,
	},
}
