package gen

import (
	"fmt"
	"strings"
)

// Every prompt ends with an explicit "never include the answer" clause. That
// is the whole answer-leak contract; the engines do not inspect content.

func buildPrompt(kind Kind, p Params) (string, error) {
	switch kind {
	case KindTask:
		return fmt.Sprintf(`Sen 'DİL AVCILARI' yarışmasının sunucususun.
Hedef Dil: %s
Seviye: %s

Yarışmacıya çok kısa, net bir görev ver.
Cevabı veya ipucunu ASLA verme. Sadece emri ver.

Örnekler:
- "15 saniye içinde İngilizce 5 farklı meyve ismi say!"
- "Tek ayak üstünde dururken 10'dan geriye İngilizce say!"
- "Masa kelimesini İngilizce bir cümlede kullan."

Sadece görevi yaz.`, p.Language, p.Difficulty), nil

	case KindPenalty:
		return `Kısa, komik, utandırmayan bir 'Cezalı Görev' ver.
Örnek: "Bir sonraki tura kadar robot gibi konuş."
Sadece görevi yaz.`, nil

	case KindColorTask:
		color := p.Extra
		if strings.TrimSpace(color) == "" {
			color = "Renk"
		}
		return fmt.Sprintf(`Oyun: 2. Tur (Renklerin Dili).
Renk: %s
Dil: %s

Bu renkle ilgili bir nesne bulmasını iste YA DA bu rengi içeren bir deyim sor.
ÖNEMLİ: Cevabı içinde verme! Sadece soruyu sor.
Sadece soruyu yaz.`, color, p.Language), nil

	case KindWrongWord:
		return fmt.Sprintf(`3. Tur Final Sorusu. Dil: %s.
Bana 5-6 kelimelik bir cümle ver. Cümlenin içinde BİR kelime mantıken çok saçma (absürt) olsun.

KURALLAR:
1. Sadece cümleyi yaz.
2. Hangi kelimenin yanlış olduğunu veya doğru cevabı ASLA yazma.
3. Parantez içinde açıklama yapma.`, p.Language), nil

	case KindInterview:
		return fmt.Sprintf(`3. Tur Mülakat. Dil: %s.
Yarışmacıya felsefi, düşündürücü derin bir soru sor.
Cevap verme, sadece soruyu sor.
Örn: "Zaman makinesi olsaydı geçmişe mi geleceğe mi giderdin?"`, p.Language), nil

	case KindRiddle:
		return fmt.Sprintf(`3. Tur Final Bilmecesi. Dil: %s.
Zeka gerektiren zor bir bilmece sor.

ÇOK ÖNEMLİ:
- Bilmecenin cevabını ASLA yazma.
- Sadece soruyu sor.`, p.Language), nil

	case KindSpy:
		return `Bir casusluk oyunu için 3 tane 'Yasak Kelime' belirle.
Bu kelimeler günlük hayatta sık kullanılan kelimeler olsun.
Format:
Hedef Kelimeler: [Kelime1], [Kelime2], [Kelime3]
Görev: Bu kelimeleri rakip takıma fark ettirmeden söyletmeye çalış.`, nil
	}
	return "", fmt.Errorf("unknown prompt kind %q", kind)
}
